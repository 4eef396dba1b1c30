package mockapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// openedAtLayout — формат dataAbertura, как у ASP.NET DateTime без зоны.
const openedAtLayout = "2006-01-02T15:04:05"

// Handler — обработчики эндпоинтов SUPTEC API.
type Handler struct {
	store  Store
	tokens *Tokens
	log    *slog.Logger
}

func NewHandler(store Store, tokens *Tokens, log *slog.Logger) *Handler {
	return &Handler{store: store, tokens: tokens, log: log}
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// Login — вход менеджера в настольный клиент. Другие типы получают 401.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := h.store.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil || u.Kind != KindManager || !checkPassword(u.PasswordHash, req.Senha) {
		if err != nil && !errors.Is(err, ErrNotFound) {
			h.log.Error("login: find user", "error", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	token, err := h.tokens.Issue(u)
	if err != nil {
		h.log.Error("login: issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	h.log.Info("manager logged in", "email", u.Email)
	c.JSON(http.StatusOK, gin.H{"token": token, "nome": u.Name})
}

func userJSON(u UserRecord) gin.H {
	out := gin.H{
		u.Kind.IDKey(): u.ID,
		"nome":         u.Name,
		"email":        u.Email,
		"telefone":     u.Phone,
	}
	if u.Kind.UsesSpecialty() {
		out["especialidade"] = u.Specialty
	} else {
		out["setor"] = u.Sector
	}
	return out
}

// ListUsers — GET <Resource>/Listar.
func (h *Handler) ListUsers(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.store.ListUsers(c.Request.Context(), kind)
		if err != nil {
			h.log.Error("list users", "kind", kind, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out := make([]gin.H, 0, len(items))
		for _, u := range items {
			out = append(out, userJSON(u))
		}
		c.JSON(http.StatusOK, out)
	}
}

type addUserRequest struct {
	Nome          string `json:"nome" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Senha         string `json:"senha" binding:"required,min=6"`
	Telefone      string `json:"telefone"`
	Setor         string `json:"setor"`
	Especialidade string `json:"especialidade"`
}

// AddUser — POST <Resource>/Adicionar.
func (h *Handler) AddUser(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		hash, err := hashPassword(req.Senha)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		u := UserRecord{
			Kind:         kind,
			Name:         strings.TrimSpace(req.Nome),
			Email:        strings.TrimSpace(req.Email),
			PasswordHash: hash,
			Phone:        req.Telefone,
		}
		if kind.UsesSpecialty() {
			u.Specialty = req.Especialidade
		} else {
			u.Sector = req.Setor
		}
		u, err = h.store.AddUser(c.Request.Context(), u)
		if err != nil {
			h.writeStoreError(c, "add user", err)
			return
		}
		c.JSON(http.StatusCreated, userJSON(u))
	}
}

type editUserRequest struct {
	Nome          string  `json:"nome" binding:"required"`
	Email         string  `json:"email" binding:"required"`
	Telefone      string  `json:"telefone"`
	Senha         string  `json:"senha"`
	Setor         *string `json:"setor"`
	Especialidade *string `json:"especialidade"`
}

// EditUser — PUT <Resource>/Editar/{id}.
func (h *Handler) EditUser(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req editUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		changes := UserChanges{
			Name:        strings.TrimSpace(req.Nome),
			Email:       strings.TrimSpace(req.Email),
			Phone:       req.Telefone,
			Affiliation: req.Setor,
		}
		if kind.UsesSpecialty() {
			changes.Affiliation = req.Especialidade
		}
		if req.Senha != "" {
			hash, err := hashPassword(req.Senha)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			changes.PasswordHash = hash
		}
		u, err := h.store.UpdateUser(c.Request.Context(), kind, c.Param("id"), changes)
		if err != nil {
			h.writeStoreError(c, "edit user", err)
			return
		}
		c.JSON(http.StatusOK, userJSON(u))
	}
}

// DeleteUser — DELETE <Resource>/Excluir/{id}.
func (h *Handler) DeleteUser(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.store.DeleteUser(c.Request.Context(), kind, c.Param("id")); err != nil {
			h.writeStoreError(c, "delete user", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type ticketJSON struct {
	ID                 string  `json:"chamadoID"`
	Title              string  `json:"titulo"`
	Description        string  `json:"descricao"`
	Priority           string  `json:"prioridade"`
	Status             *string `json:"status"`
	RequesterName      string  `json:"nomeDoUsuario"`
	RequesterEmail     string  `json:"emailDoUsuario"`
	RequesterSector    string  `json:"setorDoUsuario"`
	Technician         *string `json:"tecnicoResponsavel"`
	TechnicianResponse *string `json:"respostaTecnico"`
	OpenedAt           string  `json:"dataAbertura"`
}

func toTicketJSON(t TicketRecord) ticketJSON {
	return ticketJSON{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		Priority:           t.Priority,
		Status:             t.Status,
		RequesterName:      t.RequesterName,
		RequesterEmail:     t.RequesterEmail,
		RequesterSector:    t.RequesterSector,
		Technician:         t.Technician,
		TechnicianResponse: t.TechnicianResponse,
		OpenedAt:           t.OpenedAt.Format(openedAtLayout),
	}
}

// ListTickets — GET Chamado/ListarChamados.
func (h *Handler) ListTickets(c *gin.Context) {
	items, err := h.store.ListTickets(c.Request.Context())
	if err != nil {
		h.log.Error("list tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]ticketJSON, 0, len(items))
	for _, t := range items {
		out = append(out, toTicketJSON(t))
	}
	c.JSON(http.StatusOK, out)
}

type editTicketRequest struct {
	ChamadoID          string  `json:"chamadoID"`
	Titulo             string  `json:"titulo" binding:"required"`
	Descricao          string  `json:"descricao"`
	Prioridade         string  `json:"prioridade" binding:"required,oneof=Baixa Media Alta"`
	Status             *string `json:"status"`
	TecnicoResponsavel *string `json:"tecnicoResponsavel"`
	RespostaTecnico    *string `json:"respostaTecnico"`
}

// EditTicket — PUT Chamado/Editar/{id}. chamadoID в теле, если передан,
// должен совпадать с путём.
func (h *Handler) EditTicket(c *gin.Context) {
	var req editTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	id := c.Param("id")
	if req.ChamadoID != "" && req.ChamadoID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chamadoID does not match path"})
		return
	}
	t, err := h.store.UpdateTicket(c.Request.Context(), TicketRecord{
		ID:                 id,
		Title:              req.Titulo,
		Description:        req.Descricao,
		Priority:           req.Prioridade,
		Status:             req.Status,
		Technician:         req.TecnicoResponsavel,
		TechnicianResponse: req.RespostaTecnico,
	})
	if err != nil {
		h.writeStoreError(c, "edit ticket", err)
		return
	}
	c.JSON(http.StatusOK, toTicketJSON(t))
}

// DeleteTicket — DELETE Chamado/Excluir/{id}.
func (h *Handler) DeleteTicket(c *gin.Context) {
	if err := h.store.DeleteTicket(c.Request.Context(), c.Param("id")); err != nil {
		h.writeStoreError(c, "delete ticket", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

type openTicketRequest struct {
	Titulo         string  `json:"titulo" binding:"required"`
	Descricao      string  `json:"descricao"`
	Prioridade     string  `json:"prioridade" binding:"required,oneof=Baixa Media Alta"`
	Status         *string `json:"status"`
	NomeDoUsuario  string  `json:"nomeDoUsuario"`
	EmailDoUsuario string  `json:"emailDoUsuario"`
	SetorDoUsuario string  `json:"setorDoUsuario"`
}

// OpenTicket — POST Chamado/Abrir: создание тикета для разработки.
func (h *Handler) OpenTicket(c *gin.Context) {
	var req openTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	status := req.Status
	if status == nil {
		open := "Aberto"
		status = &open
	}
	t, err := h.store.CreateTicket(c.Request.Context(), TicketRecord{
		Title:           req.Titulo,
		Description:     req.Descricao,
		Priority:        req.Prioridade,
		Status:          status,
		RequesterName:   req.NomeDoUsuario,
		RequesterEmail:  req.EmailDoUsuario,
		RequesterSector: req.SetorDoUsuario,
		OpenedAt:        time.Now().Truncate(time.Second),
	})
	if err != nil {
		h.writeStoreError(c, "open ticket", err)
		return
	}
	c.JSON(http.StatusCreated, toTicketJSON(t))
}

func (h *Handler) writeStoreError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error(op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Health и Ready — служебные эндпоинты.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "suptec-mock-api",
		"time":    time.Now().Unix(),
	})
}

func Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
