package service

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/model"
)

type UserServicer interface {
	List(ctx context.Context) ListResult[model.User]
	Search(ctx context.Context, term string) ListResult[model.User]
	Update(ctx context.Context, u model.User) bool
	Delete(ctx context.Context, u model.User) bool
	LastOutcome() Outcome
}

// UserService работает со списками трёх вариантов пользователей.
// Эндпоинты пользователей вызываются без токена.
type UserService struct {
	outcomeHolder
	api   apiclient.Doer
	creds Credentials
	log   *slog.Logger
}

func NewUserService(api apiclient.Doer, creds Credentials, log *slog.Logger) *UserService {
	return &UserService{
		api:   api,
		creds: creds,
		log:   logging.Component(log, "user_service"),
	}
}

// List объединяет Gerente/Listar, Tecnico/Listar и Usuario/Listar.
// Сбой одного списка не мешает остальным.
func (s *UserService) List(ctx context.Context) ListResult[model.User] {
	var out ListResult[model.User]
	outcome := OutcomeOK
	for _, v := range model.Variants {
		res, o := s.listVariant(ctx, v)
		out.Items = append(out.Items, res.Items...)
		out.Skipped += res.Skipped
		if o != OutcomeOK && outcome == OutcomeOK {
			outcome = o
		}
	}
	if out.Items == nil {
		out.Items = []model.User{}
	}
	s.set(outcome)
	return out
}

func (s *UserService) listVariant(ctx context.Context, v model.Variant) (ListResult[model.User], Outcome) {
	endpoint := v.Resource() + "/Listar"
	resp := s.api.Do(ctx, http.MethodGet, endpoint, nil, "")
	if resp.StatusCode != http.StatusOK || resp.Body == nil {
		s.log.Warn("list failed", "variant", v.Label(), "status", resp.StatusCode)
		return ListResult[model.User]{}, failureOutcome(resp)
	}
	elems, err := decodeArray(resp.Body)
	if err != nil {
		s.log.Error("list: malformed response", "variant", v.Label(), "error", err)
		return ListResult[model.User]{}, OutcomeMalformed
	}
	var out ListResult[model.User]
	for i, raw := range elems {
		u, err := decodeUser(raw, v)
		if err != nil {
			s.log.Warn("list: skip malformed user", "variant", v.Label(), "index", i, "error", err)
			out.Skipped++
			continue
		}
		out.Items = append(out.Items, u)
	}
	return out, OutcomeOK
}

func (s *UserService) Search(ctx context.Context, term string) ListResult[model.User] {
	res := s.List(ctx)
	if strings.TrimSpace(term) == "" {
		return res
	}
	res.Items = filter(res.Items, func(u model.User) bool { return UserMatches(u, term) })
	return res
}

// IsSelf — запись принадлежит вошедшему менеджеру.
func (s *UserService) IsSelf(u model.User) bool {
	return model.SameEmail(u.Email, s.creds.LoginEmail())
}

// Delete удаляет пользователя; себя удалить нельзя. Успех — любой 2xx.
func (s *UserService) Delete(ctx context.Context, u model.User) bool {
	if !u.HasID() || u.Variant == nil {
		s.log.Warn("delete: user without id or variant")
		s.set(OutcomeInvalid)
		return false
	}
	if s.IsSelf(u) {
		s.log.Warn("delete: refusing to delete the logged-in user", "email", u.Email)
		s.set(OutcomeInvalid)
		return false
	}
	resp := s.api.Do(ctx, http.MethodDelete, u.Variant.Resource()+"/Excluir/"+u.ID, nil, "")
	if !resp.OK() {
		s.log.Warn("delete failed", "id", u.ID, "variant", u.Variant.Label(), "status", resp.StatusCode)
		s.set(OutcomeOf(resp))
		return false
	}
	s.log.Info("user deleted", "id", u.ID, "variant", u.Variant.Label())
	s.set(OutcomeOK)
	return true
}

// Update сохраняет изменения пользователя. Вариант не меняется.
func (s *UserService) Update(ctx context.Context, u model.User) bool {
	if !u.HasID() || u.Variant == nil {
		s.log.Warn("update: user without id or variant")
		s.set(OutcomeInvalid)
		return false
	}
	body, err := encodeUserUpdate(u)
	if err != nil {
		s.log.Error("update: marshal", "error", err)
		s.set(OutcomeInvalid)
		return false
	}
	resp := s.api.Do(ctx, http.MethodPut, u.Variant.Resource()+"/Editar/"+u.ID, body, "")
	if !resp.OK() {
		s.log.Warn("update failed", "id", u.ID, "variant", u.Variant.Label(), "status", resp.StatusCode)
		s.set(OutcomeOf(resp))
		return false
	}
	s.log.Info("user updated", "id", u.ID, "variant", u.Variant.Label())
	s.set(OutcomeOK)
	return true
}
