// Package records holds the data model shared by the importers, the
// services and the reports.
package records

import (
	"strings"

	"github.com/lysyi3m/radio-guiones/app/textnorm"
)

// Placeholder values written by the importers when a field is missing.
const (
	UntitledScript   = "Sin título"
	UnknownWriter    = "Desconocido"
	UnknownGenre     = "Desconocido"
	UnknownAdvisor   = "No especificado"
	DefaultTheme     = "General"
	DefaultNewsBy    = "Redacción"
	DefaultNewsLabel = "Noticia"
)

// Script is a guion: the topic record of one broadcast episode.
type Script struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Genre     string   `json:"genre"`
	DateAdded string   `json:"dateAdded"`
	Writer    string   `json:"writer"`
	Advisor   string   `json:"advisor"`
	Themes    []string `json:"themes"`
	Content   string   `json:"content,omitempty"`
}

// DedupKey identifies the same logical script across imports.
func (s Script) DedupKey() string {
	return strings.Join([]string{
		s.DateAdded,
		textnorm.Normalize(s.Title),
		textnorm.Normalize(s.Writer),
		textnorm.Normalize(strings.Join(s.Themes, " ")),
	}, "|")
}

type NewsItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleWorker   Role = "worker"
	RoleListener Role = "listener"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWorker, RoleListener:
		return true
	}
	return false
}

// Staff classifications.
const (
	ClassDirector      = "Director"
	ClassAdvisor       = "Asesor"
	ClassSound         = "Realizador de sonido"
	ClassAnnouncer     = "Locutor"
	ClassAdministrator = "Administrador"
	ClassUser          = "Usuario"
)

var Classifications = []string{
	ClassDirector, ClassAdvisor, ClassSound, ClassAnnouncer, ClassAdministrator, ClassUser,
}

// AdminUsername is the built-in account that can never be deleted.
const AdminUsername = "admin"

type User struct {
	Username       string `json:"username"`
	Name           string `json:"name"`
	Mobile         string `json:"mobile"`
	Password       string `json:"password"`
	Role           Role   `json:"role"`
	Classification string `json:"classification,omitempty"`
}

type LevelAmount struct {
	Level  string  `json:"level"`
	Amount float64 `json:"amount"`
}

type RolePaymentInfo struct {
	Role       string        `json:"role"`
	Percentage float64       `json:"percentage"`
	TR         string        `json:"tr"`
	Salaries   []LevelAmount `json:"salaries"`
	Rates      []LevelAmount `json:"rates"`
}

// ProgramCatalog is the payment reference of one program.
type ProgramCatalog struct {
	Name  string            `json:"name"`
	Roles []RolePaymentInfo `json:"roles"`
}

// ProgramFicha is the technical sheet of a program.
type ProgramFicha struct {
	Name      string   `json:"name"`
	Schedule  string   `json:"schedule"`
	Frequency string   `json:"frequency"`
	Duration  string   `json:"duration"`
	Audience  string   `json:"audience"`
	MusicTime string   `json:"musicTime"`
	TalkTime  string   `json:"talkTime"`
	Objective string   `json:"objective"`
	Sections  []string `json:"sections"`
}

type WorkLog struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Role        string  `json:"role"`
	ProgramName string  `json:"programName"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
}

// NaturalKey is unique across the work-log set.
func (w WorkLog) NaturalKey() string {
	return strings.Join([]string{w.UserID, w.Role, w.ProgramName, w.Date}, "|")
}

type RoleLevel struct {
	Role  string `json:"role"`
	Level string `json:"level"`
}

// PaymentConfig is the per-user payroll setup. Version tracks the stored
// schema so older shapes can be migrated on load.
type PaymentConfig struct {
	Version int         `json:"version"`
	Roles   []RoleLevel `json:"roles"`
}

type SearchEntry struct {
	Query string `json:"query"`
	At    int64  `json:"at"`
}
