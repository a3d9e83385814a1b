package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter builds the routing table. Ids match [0-9]+; a known path with
// the wrong method answers 405.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.requestID, h.accessLog, h.recoverer)

	r.HandleFunc("/", h.home).Methods(http.MethodGet)

	r.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/new", h.newUserForm).Methods(http.MethodGet)
	r.HandleFunc("/users/new", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}", h.showUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}/edit", h.editUserForm).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}/edit", h.updateUser).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}/delete", h.deleteUser).Methods(http.MethodPost)

	r.HandleFunc("/users/{id:[0-9]+}/posts/new", h.newPostForm).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}/posts/new", h.createPost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}", h.showPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}/edit", h.editPostForm).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}/edit", h.updatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/delete", h.deletePost).Methods(http.MethodPost)

	r.HandleFunc("/tags", h.listTags).Methods(http.MethodGet)
	r.HandleFunc("/tags/new", h.newTagForm).Methods(http.MethodGet)
	r.HandleFunc("/tags/new", h.createTag).Methods(http.MethodPost)
	r.HandleFunc("/tags/{id:[0-9]+}", h.showTag).Methods(http.MethodGet)
	r.HandleFunc("/tags/{id:[0-9]+}/edit", h.editTagForm).Methods(http.MethodGet)
	r.HandleFunc("/tags/{id:[0-9]+}/edit", h.updateTag).Methods(http.MethodPost)
	r.HandleFunc("/tags/{id:[0-9]+}/delete", h.deleteTag).Methods(http.MethodPost)

	return r
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/users", http.StatusFound)
}
