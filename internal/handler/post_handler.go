package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/mux"

	"miniblog/internal/middleware"
)

type postForm struct {
	Title string `validate:"required"`
	Body  string
}

func (h *Handlers) Hello(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Hello, World")
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "OK")
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.List(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView{
			PostWithAuthor: p,
			CreatedAgo:     humanize.Time(p.Created),
		})
	}

	h.render(w, r, http.StatusOK, "index.html", page{Title: "Posts", Posts: views})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "create.html", page{Title: "New Post"})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := postForm{
		Title: r.PostFormValue("title"),
		Body:  r.PostFormValue("body"),
	}
	echo := map[string]string{"title": form.Title, "body": form.Body}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusOK, "create.html", page{
			Title: "New Post",
			Error: formErrorMessage(err),
			Form:  echo,
		})
		return
	}

	_, err := h.PostService.Create(r.Context(), form.Title, form.Body, user.ID)
	if err != nil {
		if msg := serviceError(w, err); msg != "" {
			h.render(w, r, http.StatusOK, "create.html", page{
				Title: "New Post",
				Error: msg,
				Form:  echo,
			})
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	postID, err := postIDFromRequest(r)
	if err != nil {
		writeError(w, "Invalid post id", http.StatusNotFound)
		return
	}

	// ownership is checked on the GET as well, so a non-author never even
	// sees the edit form
	post, err := h.PostService.Get(r.Context(), postID, user.ID, true)
	if err != nil {
		serviceError(w, err)
		return
	}

	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "update.html", page{
			Title: fmt.Sprintf("Edit %q", post.Title),
			Post:  post,
			Form:  map[string]string{"title": post.Title, "body": post.Body},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := postForm{
		Title: r.PostFormValue("title"),
		Body:  r.PostFormValue("body"),
	}
	echo := map[string]string{"title": form.Title, "body": form.Body}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusOK, "update.html", page{
			Title: fmt.Sprintf("Edit %q", post.Title),
			Post:  post,
			Error: formErrorMessage(err),
			Form:  echo,
		})
		return
	}

	err = h.PostService.Update(r.Context(), postID, form.Title, form.Body, user.ID)
	if err != nil {
		if msg := serviceError(w, err); msg != "" {
			h.render(w, r, http.StatusOK, "update.html", page{
				Title: fmt.Sprintf("Edit %q", post.Title),
				Post:  post,
				Error: msg,
				Form:  echo,
			})
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	postID, err := postIDFromRequest(r)
	if err != nil {
		writeError(w, "Invalid post id", http.StatusNotFound)
		return
	}

	if err := h.PostService.Delete(r.Context(), postID, user.ID); err != nil {
		serviceError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func postIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
