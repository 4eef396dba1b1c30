package workflow

import (
	"context"
	"sync"

	"github.com/psds-microservice/suptec-client/internal/model"
	"github.com/psds-microservice/suptec-client/internal/service"
)

type fakeTickets struct {
	mu      sync.Mutex
	items   []model.Ticket
	skipped int
	outcome service.Outcome
	ok      bool
	lists   int
	updated []model.Ticket
	deleted []model.Ticket
	// block — если задан, Update/Delete ждут закрытия канала.
	block chan struct{}
}

func (f *fakeTickets) List(context.Context) service.ListResult[model.Ticket] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return service.ListResult[model.Ticket]{Items: append([]model.Ticket(nil), f.items...), Skipped: f.skipped}
}

func (f *fakeTickets) Search(ctx context.Context, term string) service.ListResult[model.Ticket] {
	return f.List(ctx)
}

func (f *fakeTickets) FilterByPriority(ctx context.Context, _ string) service.ListResult[model.Ticket] {
	return f.List(ctx)
}

func (f *fakeTickets) Update(_ context.Context, t model.Ticket) bool {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, t)
	return f.ok
}

func (f *fakeTickets) Delete(_ context.Context, t model.Ticket) bool {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, t)
	return f.ok
}

func (f *fakeTickets) LastOutcome() service.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome
}

func (f *fakeTickets) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

type fakeUsers struct {
	mu      sync.Mutex
	items   []model.User
	outcome service.Outcome
	ok      bool
	lists   int
	updated []model.User
	deleted []model.User
}

func (f *fakeUsers) List(context.Context) service.ListResult[model.User] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return service.ListResult[model.User]{Items: append([]model.User(nil), f.items...)}
}

func (f *fakeUsers) Search(ctx context.Context, _ string) service.ListResult[model.User] {
	return f.List(ctx)
}

func (f *fakeUsers) Update(_ context.Context, u model.User) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, u)
	return f.ok
}

func (f *fakeUsers) Delete(_ context.Context, u model.User) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, u)
	return f.ok
}

func (f *fakeUsers) LastOutcome() service.Outcome { return f.outcome }

type registration struct {
	variant     model.Variant
	name        string
	email       string
	password    string
	phone       string
	affiliation string
}

type fakeRegistrar struct {
	ok      bool
	outcome service.Outcome
	added   []registration
}

func (f *fakeRegistrar) Add(_ context.Context, v model.Variant, name, email, password, phone, affiliation string) bool {
	f.added = append(f.added, registration{v, name, email, password, phone, affiliation})
	return f.ok
}

func (f *fakeRegistrar) LastOutcome() service.Outcome { return f.outcome }

type fakeSelf string

func (s fakeSelf) LoginEmail() string { return string(s) }

func sampleTickets() []model.Ticket {
	return []model.Ticket{
		{ID: "1", Title: "Impressora travada", Priority: "Alta", Status: model.StringPtr("Aberto"),
			Requester: model.Requester{Name: "Ana", Email: "ana@x.com", Sector: "RH"}},
		{ID: "2", Title: "Sem internet", Priority: "Media", Requester: model.Requester{Name: "Bruno"}},
		{ID: "3", Title: "Troca de mouse", Priority: "Baixa", AssignedTechnician: model.StringPtr("Carlos")},
	}
}

func sampleUsers() []model.User {
	return []model.User{
		{ID: "1", Name: "Gabi Gerente", Email: "gabi@x.com", Phone: "11999999999", Variant: model.Manager, Sector: "TI"},
		{ID: "1", Name: "Carlos", Email: "carlos@x.com", Phone: "1133334444", Variant: model.Technician, Specialty: "Redes"},
		{ID: "7", Name: "Dora", Email: "dora@x.com", Phone: "33334444", Variant: model.CommonUser, Sector: "RH"},
	}
}
