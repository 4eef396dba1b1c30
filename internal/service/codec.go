package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/psds-microservice/suptec-client/internal/model"
)

type object map[string]json.RawMessage

// decodeArray разбирает тело ответа как массив и возвращает элементы «как есть».
func decodeArray(body []byte) ([]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty body")
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(body, &arr); err != nil {
		return nil, fmt.Errorf("decode array: %w", err)
	}
	return arr, nil
}

func decodeObject(raw json.RawMessage) (object, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("decode object: %w", err)
	}
	if obj == nil {
		return nil, errors.New("element is null")
	}
	return obj, nil
}

// str возвращает скалярное значение поля как строку. Отсутствующее поле и
// null — (…, false, nil). Объект или массив на месте скаляра — ошибка.
func (o object) str(key string) (string, bool, error) {
	raw, ok := o[key]
	if !ok {
		return "", false, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, fmt.Errorf("field %s: %w", key, err)
		}
		return s, true, nil
	case '{', '[':
		return "", false, fmt.Errorf("field %s: expected scalar", key)
	}
	return string(raw), true, nil
}

// first — значение первого присутствующего ключа из списка.
func (o object) first(keys ...string) (string, bool, error) {
	for _, k := range keys {
		v, ok, err := o.str(k)
		if err != nil {
			return "", false, err
		}
		if ok {
			return v, true, nil
		}
	}
	return "", false, nil
}

func (o object) strOrEmpty(key string) (string, error) {
	v, _, err := o.str(key)
	return v, err
}

// Поля тикета в ответах API.
const (
	fieldTicketID       = "chamadoID"
	fieldRequesterName  = "nomeDoUsuario"
	fieldRequesterEmail = "emailDoUsuario"
	fieldRequesterSect  = "setorDoUsuario"
	fieldTitle          = "titulo"
	fieldDescription    = "descricao"
	fieldPriority       = "prioridade"
	fieldStatus         = "status"
	fieldOpenedAt       = "dataAbertura"
	fieldAssignedTech   = "tecnicoResponsavel"
	fieldTechResponse   = "respostaTecnico"
)

// Исторические имена полей, в порядке приоритета.
var (
	techResponseAliases = []string{"respostaTecnico", "respostaDoTecnico", "resposta"}
	assignedTechAliases = []string{"nomeDoTecnico", "tecnicoResponsavel", "tecnico"}
)

// Сервер отдаёт локальное время без зоны (ASP.NET DateTime).
var openedAtLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339Nano,
}

// parseOpenedAt: dataAbertura приходит без зоны (локальное время сервера),
// поэтому разбирается в time.Local; зона из строки, если есть, сохраняется.
func parseOpenedAt(s string) (time.Time, error) {
	for _, layout := range openedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("field %s: unsupported time %q", fieldOpenedAt, s)
}

// decodeTicket разбирает один элемент списка. Отсутствующие поля остаются
// пустыми; ошибка означает, что элемент нужно пропустить.
func decodeTicket(raw json.RawMessage) (model.Ticket, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return model.Ticket{}, err
	}
	var t model.Ticket
	var errs []error
	get := func(key string) string {
		v, err := obj.strOrEmpty(key)
		errs = append(errs, err)
		return v
	}
	optional := func(keys ...string) *string {
		v, ok, err := obj.first(keys...)
		errs = append(errs, err)
		if !ok {
			return nil
		}
		return &v
	}

	t.ID = get(fieldTicketID)
	t.Requester.Name = get(fieldRequesterName)
	t.Requester.Email = get(fieldRequesterEmail)
	t.Requester.Sector = get(fieldRequesterSect)
	t.Title = get(fieldTitle)
	t.Description = get(fieldDescription)
	t.Priority = get(fieldPriority)
	t.Status = optional(fieldStatus)
	t.TechnicianResponse = optional(techResponseAliases...)
	t.AssignedTechnician = optional(assignedTechAliases...)
	if err := errors.Join(errs...); err != nil {
		return model.Ticket{}, err
	}

	if opened, ok, err := obj.str(fieldOpenedAt); err != nil {
		return model.Ticket{}, err
	} else if ok {
		if t.OpenedAt, err = parseOpenedAt(opened); err != nil {
			return model.Ticket{}, err
		}
	}
	return t, nil
}

// encodeTicketUpdate — тело PUT Chamado/Editar/{id}.
func encodeTicketUpdate(t model.Ticket) ([]byte, error) {
	body := map[string]any{
		fieldTicketID:    t.ID,
		fieldTitle:       t.Title,
		fieldDescription: t.Description,
		fieldPriority:    t.Priority,
	}
	if t.Status != nil {
		body[fieldStatus] = *t.Status
	}
	if t.AssignedTechnician != nil && strings.TrimSpace(*t.AssignedTechnician) != "" {
		body[fieldAssignedTech] = *t.AssignedTechnician
	}
	if t.TechnicianResponse != nil {
		body[fieldTechResponse] = *t.TechnicianResponse
	}
	return json.Marshal(body)
}

// Поля пользователя.
const (
	fieldName     = "nome"
	fieldEmail    = "email"
	fieldPassword = "senha"
	fieldPhone    = "telefone"
)

// decodeUser разбирает элемент списка <Resource>/Listar.
func decodeUser(raw json.RawMessage, v model.Variant) (model.User, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return model.User{}, err
	}
	u := model.User{Variant: v}
	id, _, idErr := obj.first(v.IDKey(), "id")
	name, nameErr := obj.strOrEmpty(fieldName)
	email, emailErr := obj.strOrEmpty(fieldEmail)
	phone, phoneErr := obj.strOrEmpty(fieldPhone)
	aff, affErr := obj.strOrEmpty(v.Affiliation().JSONKey())
	if err := errors.Join(idErr, nameErr, emailErr, phoneErr, affErr); err != nil {
		return model.User{}, err
	}
	u.ID, u.Name, u.Email, u.Phone = id, name, email, phone
	u.SetAffiliation(aff)
	return u, nil
}

// encodeUserUpdate — тело PUT <Resource>/Editar/{id}. Пароль уходит только
// если задан; ключ отдела/специализации по варианту есть всегда.
func encodeUserUpdate(u model.User) ([]byte, error) {
	body := map[string]any{
		fieldName:  u.Name,
		fieldEmail: u.Email,
		fieldPhone: u.Phone,
	}
	body[u.Variant.Affiliation().JSONKey()] = u.AffiliationValue()
	if u.Password != "" {
		body[fieldPassword] = u.Password
	}
	return json.Marshal(body)
}

// encodeRegistration — тело POST <Resource>/Adicionar.
func encodeRegistration(v model.Variant, name, email, password, phone, affiliation string) ([]byte, error) {
	return json.Marshal(map[string]any{
		fieldName:                    name,
		fieldEmail:                   email,
		fieldPassword:                password,
		fieldPhone:                   phone,
		v.Affiliation().JSONKey(): affiliation,
	})
}
