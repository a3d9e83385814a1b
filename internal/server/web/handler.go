package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/logging"
	"github.com/dmitrijs2005/blogly/internal/server/flash"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/services"
	"github.com/dmitrijs2005/blogly/internal/server/views"
	"github.com/gorilla/mux"
)

type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Profile(ctx context.Context, id int64) (*services.UserProfile, error)
	Create(ctx context.Context, in services.UserInput) (*models.User, error)
	Update(ctx context.Context, id int64, in services.UserInput) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type PostService interface {
	Get(ctx context.Context, id int64) (*services.PostDetails, error)
	Create(ctx context.Context, userID int64, in services.PostInput) (*models.Post, error)
	Update(ctx context.Context, id int64, in services.PostInput) (*models.Post, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type TagService interface {
	List(ctx context.Context) ([]*models.Tag, error)
	Get(ctx context.Context, id int64) (*services.TagDetails, error)
	Create(ctx context.Context, in services.TagInput) (*models.Tag, error)
	Update(ctx context.Context, id int64, in services.TagInput) (*models.Tag, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	users  UserService
	posts  PostService
	tags   TagService
	views  views.Renderer
	flash  *flash.Store
	logger logging.Logger
}

func NewHandler(us UserService, ps PostService, ts TagService, v views.Renderer, f *flash.Store, l logging.Logger) *Handler {
	return &Handler{
		users:  us,
		posts:  ps,
		tags:   ts,
		views:  v,
		flash:  f,
		logger: l.With("module", "web"),
	}
}

// render writes the view with the pending flash messages attached. A form
// error passed as data["Error"] is shown as a danger message.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}

	messages := h.flash.Pop(w, r)
	if text, ok := data["Error"].(string); ok {
		messages = append(messages, flash.Message{Category: flash.Danger, Text: text})
		delete(data, "Error")
	}
	data["Flashes"] = messages

	body, err := h.views.Render(name, data)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn(r.Context(), "error writing response", "error", err)
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}

// notice queues a flash message for the next page.
func (h *Handler) notice(w http.ResponseWriter, r *http.Request, category, text string) {
	if err := h.flash.Add(w, r, category, text); err != nil {
		h.logger.Warn(r.Context(), "error setting flash", "error", err)
	}
}

// fail maps err to a status. Anything but a missing entity is logged as a 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	h.logger.Error(r.Context(), err.Error(), "path", r.URL.Path)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// pathID reads the {id} route variable. The router only lets digits through,
// so a failure here means the value overflows and cannot name any row.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

// formTagIDs returns the integer values of the repeated "tags" field.
func formTagIDs(r *http.Request) []int64 {
	var ids []int64
	for _, v := range r.PostForm["tags"] {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func selectedSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
