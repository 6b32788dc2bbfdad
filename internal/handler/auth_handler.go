package handlers

import (
	"net/http"

	"miniblog/internal/session"
)

type registerForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "register.html", page{Title: "Register"})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := registerForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	echo := map[string]string{"username": form.Username}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusOK, "register.html", page{
			Title: "Register",
			Error: formErrorMessage(err),
			Form:  echo,
		})
		return
	}

	_, err := h.AuthService.Register(r.Context(), form.Username, form.Password)
	if err != nil {
		if msg := serviceError(w, err); msg != "" {
			h.render(w, r, http.StatusOK, "register.html", page{
				Title: "Register",
				Error: msg,
				Form:  echo,
			})
		}
		return
	}

	http.Redirect(w, r, "/auth/login", http.StatusFound)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, http.StatusOK, "login.html", page{Title: "Log In"})
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	echo := map[string]string{"username": form.Username}

	if err := h.Validate.Struct(form); err != nil {
		h.render(w, r, http.StatusOK, "login.html", page{
			Title: "Log In",
			Error: formErrorMessage(err),
			Form:  echo,
		})
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if msg := serviceError(w, err); msg != "" {
			h.render(w, r, http.StatusOK, "login.html", page{
				Title: "Log In",
				Error: msg,
				Form:  echo,
			})
		}
		return
	}

	// any prior session cookie is replaced wholesale
	h.Sessions.SetCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
