package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/blogly/internal/common"
	"github.com/dmitrijs2005/blogly/internal/server/flash"
	"github.com/dmitrijs2005/blogly/internal/server/models"
	"github.com/dmitrijs2005/blogly/internal/server/services"
)

func postURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

func postInput(r *http.Request) services.PostInput {
	return services.PostInput{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
		TagIDs:  formTagIDs(r),
	}
}

// postForm renders the add/edit form. post.ID == 0 selects the add variant.
func (h *Handler) postForm(w http.ResponseWriter, r *http.Request, status int, user *models.User, post *models.Post, selected []int64, formErr error) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := map[string]any{
		"User":     user,
		"Post":     post,
		"Tags":     tags,
		"Selected": selectedSet(selected),
	}
	if formErr != nil {
		data["Error"] = formErr.Error()
	}

	h.render(w, r, status, "posts/form", data)
}

func (h *Handler) newPostForm(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.postForm(w, r, http.StatusOK, user, &models.Post{}, nil, nil)
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := postInput(r)
	post, err := h.posts.Create(r.Context(), userID, in)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.postForm(w, r, http.StatusBadRequest, user, &models.Post{Title: in.Title, Content: in.Content}, in.TagIDs, err)
			return
		}
		h.fail(w, r, err)
		return
	}

	h.notice(w, r, flash.Success, "Post created")
	h.redirect(w, r, postURL(post.ID))
}

func (h *Handler) showPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	details, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts/show", map[string]any{
		"Post":   details.Post,
		"Author": details.Author,
		"Tags":   details.Tags,
	})
}

func tagIDs(tags []*models.Tag) []int64 {
	ids := make([]int64, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func (h *Handler) editPostForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	details, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.postForm(w, r, http.StatusOK, details.Author, details.Post, tagIDs(details.Tags), nil)
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	details, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := postInput(r)
	if _, err := h.posts.Update(r.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			post := *details.Post
			post.Title, post.Content = in.Title, in.Content
			h.postForm(w, r, http.StatusBadRequest, details.Author, &post, in.TagIDs, err)
		case errors.Is(err, common.ErrorConflict):
			h.logger.Warn(r.Context(), "post update conflict", "post_id", id, "error", err)
			h.notice(w, r, flash.Warning, "Post could not be saved, please try again")
			h.redirect(w, r, postURL(id))
		default:
			h.fail(w, r, err)
		}
		return
	}

	h.notice(w, r, flash.Success, "Post updated")
	h.redirect(w, r, postURL(id))
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	ownerID, err := h.posts.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.notice(w, r, flash.Success, "Post deleted")
	h.redirect(w, r, userURL(ownerID))
}
