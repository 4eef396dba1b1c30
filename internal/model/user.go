package model

import "strings"

// User — пользователь системы одного из трёх вариантов.
// Password только для записи: API его не возвращает.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Phone     string
	Variant   Variant
	Sector    string
	Specialty string
}

func (u *User) HasID() bool {
	return u != nil && strings.TrimSpace(u.ID) != ""
}

// VariantLabel — подпись варианта или пустая строка, если вариант не задан.
func (u User) VariantLabel() string {
	if u.Variant == nil {
		return ""
	}
	return u.Variant.Label()
}

// AffiliationValue — отдел или специализация в зависимости от варианта.
func (u User) AffiliationValue() string {
	if u.Variant != nil && u.Variant.Affiliation() == AffiliationSpecialty {
		return u.Specialty
	}
	return u.Sector
}

// AffiliationText — то же, что AffiliationValue, но "N/A" для пустого значения.
func (u User) AffiliationText() string {
	return orNA(u.AffiliationValue())
}

// SetAffiliation записывает значение в поле, которое использует вариант,
// и очищает второе.
func (u *User) SetAffiliation(value string) {
	if u.Variant != nil && u.Variant.Affiliation() == AffiliationSpecialty {
		u.Specialty = value
		u.Sector = ""
		return
	}
	u.Sector = value
	u.Specialty = ""
}

// SameEmail сравнивает e-mail без учёта регистра.
func SameEmail(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
