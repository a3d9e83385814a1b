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

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "users/list", map[string]any{"Users": users})
}

func (h *Handler) newUserForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "users/form", map[string]any{"User": &models.User{}})
}

func userInput(r *http.Request) services.UserInput {
	return services.UserInput{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		ImageURL:  r.PostFormValue("image_url"),
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := userInput(r)
	if _, err := h.users.Create(r.Context(), in); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.render(w, r, http.StatusBadRequest, "users/form", map[string]any{
				"User":  &models.User{FirstName: in.FirstName, LastName: in.LastName, ImageURL: in.ImageURL},
				"Error": err.Error(),
			})
			return
		}
		h.fail(w, r, err)
		return
	}

	h.notice(w, r, flash.Success, "User created")
	h.redirect(w, r, "/users")
}

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	profile, err := h.users.Profile(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "users/show", map[string]any{
		"User":  profile.User,
		"Posts": profile.Posts,
		"Tags":  profile.Tags,
	})
}

func (h *Handler) editUserForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "users/form", map[string]any{"User": user})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.users.Get(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := userInput(r)
	if _, err := h.users.Update(r.Context(), id, in); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			h.render(w, r, http.StatusBadRequest, "users/form", map[string]any{
				"User":  &models.User{ID: id, FirstName: in.FirstName, LastName: in.LastName, ImageURL: in.ImageURL},
				"Error": err.Error(),
			})
			return
		}
		h.fail(w, r, err)
		return
	}

	h.notice(w, r, flash.Success, "User updated")
	h.redirect(w, r, "/users")
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.notice(w, r, flash.Success, "User deleted")
	h.redirect(w, r, "/users")
}

func userURL(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}
