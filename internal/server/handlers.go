package server

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gamely-app/webclient/internal/gamely"
	"github.com/gamely-app/webclient/types"
	"github.com/go-chi/chi/v5"
)

// Handler serves the web frontend pages.
type Handler struct {
	api           *gamely.Client
	sessions      *registry
	templates     *template.Template
	logger        *log.Logger
	secureCookies bool
}

// NewHandler constructs a handler with parsed templates. secureCookies
// marks the token cookie Secure, for deployments behind TLS.
func NewHandler(api *gamely.Client, sessions *registry, secureCookies bool) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		api:           api,
		sessions:      sessions,
		templates:     templates,
		logger:        log.Default(),
		secureCookies: secureCookies,
	}, nil
}

// Routes registers all frontend routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/", h.Home)
		r.Get("/login", h.LoginForm)
		r.Post("/login", h.Login)
		r.Get("/signup", h.SignupForm)
		r.Post("/signup", h.Signup)
		r.Get("/forgot-password", h.ForgotPasswordForm)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Get("/reset-password", h.ResetPasswordForm)
		r.Post("/reset-password", h.ResetPassword)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)

			r.Get("/genres", h.Genres)
			r.Get("/genres/{handle}", h.Genre)
			r.Get("/games", h.Games)
			r.Post("/games/{id}/like", h.LikeGame)
			r.Get("/profile", h.Profile)
			r.Post("/profile", h.UpdateProfile)
			r.Get("/users", h.Users)
			r.Post("/users/{username}/delete", h.DeleteUser)
		})
	})
}

// basePage carries what every view renders: the signed-in user for the
// navigation bar plus the alert banners.
type basePage struct {
	User   *types.User
	Errors []string
	Notice string
}

type authPage struct {
	basePage
	Username string
}

type signupPage struct {
	basePage
	Form gamely.Registration
}

type resetPage struct {
	basePage
	Email string
	Token string
}

type gamesPage struct {
	basePage
	Query string
	Games []types.Game
}

type genresPage struct {
	basePage
	Query  string
	Genres []types.Genre
}

type genrePage struct {
	basePage
	Genre types.Genre
}

type usersPage struct {
	basePage
	Users []types.User
}

// base builds the shared page fields from the request's session, if any.
func base(r *http.Request) basePage {
	sess := sessionFromContext(r.Context())
	if sess == nil {
		return basePage{}
	}
	return basePage{User: sess.store.CurrentUser()}
}

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", base(r))
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "login", authPage{basePage: base(r)})
}

// Login authenticates the submitted credentials, sets the token cookie,
// and registers the new session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	creds := gamely.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	sess := newWebSession(h.api, "")
	result := sess.store.Login(r.Context(), creds)
	if !result.Success {
		page := authPage{basePage: base(r), Username: creds.Username}
		page.Errors = result.Errors
		h.render(w, http.StatusOK, "login", page)
		return
	}

	token := sess.store.Token()
	h.sessions.add(token, sess)
	h.setTokenCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignupForm renders the registration page.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "signup", signupPage{basePage: base(r)})
}

// Signup registers an account and logs the new user in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	reg := gamely.Registration{
		Username:  r.PostFormValue("username"),
		Password:  r.PostFormValue("password"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
	}

	sess := newWebSession(h.api, "")
	result := sess.store.Signup(r.Context(), reg)
	if !result.Success {
		reg.Password = ""
		page := signupPage{basePage: base(r), Form: reg}
		page.Errors = result.Errors
		h.render(w, http.StatusOK, "signup", page)
		return
	}

	token := sess.store.Token()
	h.sessions.add(token, sess)
	h.setTokenCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session and the token cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFromContext(r.Context()); sess != nil {
		token := sess.store.Token()
		sess.store.Logout()
		h.sessions.drop(token)
	}
	h.clearTokenCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ForgotPasswordForm renders the reset-request page.
func (h *Handler) ForgotPasswordForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "forgot-password", resetPage{basePage: base(r)})
}

// ForgotPassword asks the backend to mail a reset token.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")

	page := resetPage{basePage: base(r), Email: email}
	if err := h.api.RequestPasswordReset(r.Context(), email); err != nil {
		page.Errors = gamely.Messages(err)
	} else {
		page.Notice = "If that address exists, a reset link is on its way."
	}
	h.render(w, http.StatusOK, "forgot-password", page)
}

// ResetPasswordForm renders the reset page; the token arrives as a query
// parameter from the emailed link.
func (h *Handler) ResetPasswordForm(w http.ResponseWriter, r *http.Request) {
	page := resetPage{basePage: base(r), Token: r.URL.Query().Get("token")}
	h.render(w, http.StatusOK, "reset-password", page)
}

// ResetPassword redeems the reset token for a new password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	token := r.PostFormValue("token")
	password := r.PostFormValue("password")

	page := resetPage{basePage: base(r), Token: token}
	if err := h.api.ResetPassword(r.Context(), token, password); err != nil {
		page.Errors = gamely.Messages(err)
	} else {
		page.Notice = "Password updated. You can log in now."
	}
	h.render(w, http.StatusOK, "reset-password", page)
}

// Games renders the games listing, searching by title when given.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	query := r.URL.Query().Get("title")

	state := sess.games.Fetch(r.Context(), query)
	page := gamesPage{basePage: base(r), Query: query, Games: state.Data}
	page.Errors = gamely.Messages(state.Err)
	h.render(w, http.StatusOK, "games", page)
}

// LikeGame records a like for the signed-in user.
func (h *Handler) LikeGame(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	gameID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return
	}

	user := sess.store.CurrentUser()
	result := sess.store.LikeGame(r.Context(), user.Username, gameID)
	if !result.Success {
		state := sess.games.State()
		page := gamesPage{basePage: base(r), Games: state.Data}
		page.Errors = result.Errors
		h.render(w, http.StatusOK, "games", page)
		return
	}
	http.Redirect(w, r, "/games", http.StatusSeeOther)
}

// Genres renders the genres listing, searching by name when given.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	query := r.URL.Query().Get("name")

	state := sess.genres.Fetch(r.Context(), query)
	page := genresPage{basePage: base(r), Query: query, Genres: state.Data}
	page.Errors = gamely.Messages(state.Err)
	h.render(w, http.StatusOK, "genres", page)
}

// Genre renders one genre with its nested games.
func (h *Handler) Genre(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	handle := chi.URLParam(r, "handle")

	page := genrePage{basePage: base(r)}
	genre, err := sess.store.Client().GetGenre(r.Context(), handle)
	if err != nil {
		page.Errors = gamely.Messages(err)
	} else {
		page.Genre = genre
	}
	h.render(w, http.StatusOK, "genre", page)
}

// Profile renders the profile form.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "profile", base(r))
}

// UpdateProfile patches the signed-in user's profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	patch := gamely.ProfilePatch{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
	}

	user := sess.store.CurrentUser()
	result := sess.store.UpdateUser(r.Context(), user.Username, patch)

	page := base(r)
	if result.Success {
		page.Notice = "Profile updated."
	} else {
		page.Errors = result.Errors
	}
	h.render(w, http.StatusOK, "profile", page)
}

// Users renders the admin user table. The link is hidden from non-admins,
// but authorization itself is backend-enforced; a 403 renders inline like
// any other fetch error.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	state := sess.users.Fetch(r.Context(), "")
	page := usersPage{basePage: base(r), Users: state.Data}
	page.Errors = gamely.Messages(state.Err)
	h.render(w, http.StatusOK, "users", page)
}

// DeleteUser removes an account and re-renders the user table.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	username := chi.URLParam(r, "username")

	if err := sess.store.Client().DeleteUser(r.Context(), username); err != nil {
		state := sess.users.State()
		page := usersPage{basePage: base(r), Users: state.Data}
		page.Errors = gamely.Messages(err)
		h.render(w, http.StatusOK, "users", page)
		return
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// render executes a page template into a buffer first so a template error
// never produces a half-written response.
func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Printf("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
