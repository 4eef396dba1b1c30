package model

// Affiliation — какое из двух полей «отдел/специализация» использует вариант.
type Affiliation int

const (
	AffiliationSector Affiliation = iota
	AffiliationSpecialty
)

// JSONKey — имя поля в теле запросов API.
func (a Affiliation) JSONKey() string {
	if a == AffiliationSpecialty {
		return "especialidade"
	}
	return "setor"
}

func (a Affiliation) Label() string {
	if a == AffiliationSpecialty {
		return "Especialidade"
	}
	return "Setor"
}

// Variant — закрытый набор типов пользователей (Gerente, Técnico, Usuário).
// Реализации не экспортируются: новый вариант не соберётся, пока не
// реализует все решения, зависящие от типа (ресурс API, поле
// принадлежности, подпись).
type Variant interface {
	// Label — подпись для интерфейса ("Gerente", "Técnico", "Usuário").
	Label() string
	// Resource — префикс ресурса API ("Gerente/Listar", ...).
	Resource() string
	// Affiliation — отдел или специализация.
	Affiliation() Affiliation
	// IDKey — имя поля идентификатора в ответах Listar.
	IDKey() string

	variant()
}

type managerVariant struct{}

func (managerVariant) Label() string            { return "Gerente" }
func (managerVariant) Resource() string         { return "Gerente" }
func (managerVariant) Affiliation() Affiliation { return AffiliationSector }
func (managerVariant) IDKey() string            { return "gerenteID" }
func (managerVariant) variant()                 {}

type technicianVariant struct{}

func (technicianVariant) Label() string            { return "Técnico" }
func (technicianVariant) Resource() string         { return "Tecnico" }
func (technicianVariant) Affiliation() Affiliation { return AffiliationSpecialty }
func (technicianVariant) IDKey() string            { return "tecnicoID" }
func (technicianVariant) variant()                 {}

type commonUserVariant struct{}

func (commonUserVariant) Label() string            { return "Usuário" }
func (commonUserVariant) Resource() string         { return "Usuario" }
func (commonUserVariant) Affiliation() Affiliation { return AffiliationSector }
func (commonUserVariant) IDKey() string            { return "usuarioID" }
func (commonUserVariant) variant()                 {}

var (
	Manager    Variant = managerVariant{}
	Technician Variant = technicianVariant{}
	CommonUser Variant = commonUserVariant{}
)

// Variants в порядке, в котором API отдаёт списки.
var Variants = []Variant{Manager, Technician, CommonUser}

// ParseVariant разбирает название варианта (pt/en, без учёта регистра и акцентов).
func ParseVariant(s string) (Variant, bool) {
	switch Fold(s) {
	case "gerente", "manager":
		return Manager, true
	case "tecnico", "technician":
		return Technician, true
	case "usuario", "user", "common", "commonuser", "common-user":
		return CommonUser, true
	}
	return nil, false
}
