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

func tagEditURL(id int64) string {
	return "/tags/" + strconv.FormatInt(id, 10) + "/edit"
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "tags/list", map[string]any{"Tags": tags})
}

func (h *Handler) showTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	details, err := h.tags.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "tags/show", map[string]any{"Tag": details.Tag, "Posts": details.Posts})
}

func (h *Handler) newTagForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "tags/form", map[string]any{"Tag": &models.Tag{}})
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := services.TagInput{Name: r.PostFormValue("name")}
	if _, err := h.tags.Create(r.Context(), in); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			h.render(w, r, http.StatusBadRequest, "tags/form", map[string]any{
				"Tag":   &models.Tag{Name: in.Name},
				"Error": err.Error(),
			})
		case errors.Is(err, common.ErrorConflict):
			h.notice(w, r, flash.Warning, "Tag name already exists")
			h.redirect(w, r, "/tags/new")
		default:
			h.fail(w, r, err)
		}
		return
	}

	h.notice(w, r, flash.Success, "Tag created")
	h.redirect(w, r, "/tags")
}

func (h *Handler) editTagForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	details, err := h.tags.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "tags/form", map[string]any{"Tag": details.Tag})
}

func (h *Handler) updateTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err := h.tags.Get(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in := services.TagInput{Name: r.PostFormValue("name")}
	if _, err := h.tags.Update(r.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			h.render(w, r, http.StatusBadRequest, "tags/form", map[string]any{
				"Tag":   &models.Tag{ID: id, Name: in.Name},
				"Error": err.Error(),
			})
		case errors.Is(err, common.ErrorConflict):
			h.notice(w, r, flash.Warning, "Tag name already exists")
			h.redirect(w, r, tagEditURL(id))
		default:
			h.fail(w, r, err)
		}
		return
	}

	h.notice(w, r, flash.Success, "Tag updated")
	h.redirect(w, r, "/tags")
}

func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.tags.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}

	h.notice(w, r, flash.Success, "Tag deleted")
	h.redirect(w, r, "/tags")
}
