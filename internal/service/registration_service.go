package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
	"github.com/psds-microservice/suptec-client/internal/logging"
	"github.com/psds-microservice/suptec-client/internal/model"
)

type Registrar interface {
	Add(ctx context.Context, v model.Variant, name, email, password, phone, affiliation string) bool
	LastOutcome() Outcome
}

// RegistrationService создаёт пользователей через <Resource>/Adicionar.
type RegistrationService struct {
	outcomeHolder
	api apiclient.Doer
	log *slog.Logger
}

func NewRegistrationService(api apiclient.Doer, log *slog.Logger) *RegistrationService {
	return &RegistrationService{
		api: api,
		log: logging.Component(log, "registration_service"),
	}
}

// Add — успех только на 200 или 201. affiliation — отдел (Gerente,
// Usuário) или специализация (Técnico).
func (s *RegistrationService) Add(ctx context.Context, v model.Variant, name, email, password, phone, affiliation string) bool {
	if v == nil {
		s.set(OutcomeInvalid)
		return false
	}
	body, err := encodeRegistration(v, name, email, password, phone, affiliation)
	if err != nil {
		s.log.Error("add: marshal", "error", err)
		s.set(OutcomeInvalid)
		return false
	}
	resp := s.api.Do(ctx, http.MethodPost, v.Resource()+"/Adicionar", body, "")
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		s.log.Warn("add failed", "variant", v.Label(), "status", resp.StatusCode, "body", string(resp.Body))
		s.set(failureOutcome(resp))
		return false
	}
	s.log.Info("user registered", "variant", v.Label(), "email", email)
	s.set(OutcomeOK)
	return true
}

func (s *RegistrationService) AddManager(ctx context.Context, name, email, password, phone, sector string) bool {
	return s.Add(ctx, model.Manager, name, email, password, phone, sector)
}

func (s *RegistrationService) AddTechnician(ctx context.Context, name, email, password, phone, specialty string) bool {
	return s.Add(ctx, model.Technician, name, email, password, phone, specialty)
}

func (s *RegistrationService) AddCommonUser(ctx context.Context, name, email, password, phone, sector string) bool {
	return s.Add(ctx, model.CommonUser, name, email, password, phone, sector)
}
