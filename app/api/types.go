package api

import (
	"time"

	"github.com/lysyi3m/radio-guiones/app/backup"
	"github.com/lysyi3m/radio-guiones/app/catalog"
	"github.com/lysyi3m/radio-guiones/app/guiones"
	"github.com/lysyi3m/radio-guiones/app/newsdesk"
	"github.com/lysyi3m/radio-guiones/app/payroll"
	"github.com/lysyi3m/radio-guiones/app/programs"
	"github.com/lysyi3m/radio-guiones/app/records"
	"github.com/lysyi3m/radio-guiones/app/store"
	"github.com/lysyi3m/radio-guiones/app/users"
)

// Deps are the services the handlers delegate to.
type Deps struct {
	Store    store.Store
	Registry *programs.Registry
	Fichas   *programs.Fichas
	Scripts  *guiones.Service
	News     *newsdesk.Service
	Users    *users.Service
	Catalog  *catalog.Service
	Payroll  *payroll.Service
	Syncer   *backup.Syncer
	Channel  newsdesk.Channel
}

type Handler struct {
	store    store.Store
	registry *programs.Registry
	fichas   *programs.Fichas
	scripts  *guiones.Service
	news     *newsdesk.Service
	users    *users.Service
	catalog  *catalog.Service
	payroll  *payroll.Service
	syncer   *backup.Syncer
	channel  newsdesk.Channel
	now      func() time.Time
}

// UserView is an account without its password.
type UserView struct {
	Username       string       `json:"username"`
	Name           string       `json:"name"`
	Mobile         string       `json:"mobile"`
	Role           records.Role `json:"role"`
	Classification string       `json:"classification,omitempty"`
	CanViewDigest  bool         `json:"canViewDigest"`
}

func newUserView(u records.User) UserView {
	return UserView{
		Username:       u.Username,
		Name:           u.Name,
		Mobile:         u.Mobile,
		Role:           u.Role,
		Classification: u.Classification,
		CanViewDigest:  users.CanViewDigest(u),
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

type pulirRequest struct {
	Find    string `json:"find" binding:"required"`
	Replace string `json:"replace"`
}

type toggleRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Role    string `json:"role" binding:"required"`
	Program string `json:"program" binding:"required"`
	Date    string `json:"date"`
}

// importSummary is the answer to every text import.
type importSummary struct {
	Imported     int `json:"imported"`
	WithDefaults int `json:"withDefaults"`
	Skipped      int `json:"skipped"`
}
