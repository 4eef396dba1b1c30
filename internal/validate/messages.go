package validate

type messageKey struct {
	field string
	tag   string
}

type messages map[messageKey]FieldError

func (m messages) lookup(field, tag string) *FieldError {
	if fe, ok := m[messageKey{field, tag}]; ok {
		fe.Field = field
		return &fe
	}
	return &FieldError{Field: field, Title: "Campo inválido", Message: "Verifique o campo " + field + "."}
}

const (
	titleRequired = "Campos obrigatórios"
	titleMissing  = "Campo Obrigatório"
)

var createMessages = messages{
	{FieldVariant, "required"}: {Title: titleRequired, Message: "Por favor, selecione o tipo de usuário."},
	{FieldName, "filled"}:      {Title: titleRequired, Message: "Por favor, preencha o nome completo."},
	{FieldName, "person_name"}: {Title: "Nome inválido", Message: "O nome deve conter apenas letras e ter no mínimo 3 caracteres.\nNúmeros não são permitidos."},
	{FieldEmail, "filled"}:     {Title: titleRequired, Message: "Por favor, preencha o email."},
	{FieldEmail, "signup_email"}: {Title: "Email inválido", Message: "Por favor, digite um email válido.\n" +
		"O email deve conter @ e um domínio válido (ex: .com, .com.br)."},
	{FieldPassword, "filled"}:   {Title: titleRequired, Message: "Por favor, preencha a senha."},
	{FieldPassword, "password"}: {Title: "Senha inválida", Message: "A senha deve ter no mínimo 6 caracteres."},
	{FieldPhone, "filled"}:      {Title: titleRequired, Message: "Por favor, preencha o telefone."},
	{FieldPhone, "phone"}: {Title: "Telefone inválido", Message: "O telefone deve conter apenas números.\n" +
		"Formatos aceitos:\n" +
		"- Fixo sem DDD: 3272-2864 (8 dígitos)\n" +
		"- Celular sem DDD: 99999-9999 (9 dígitos)\n" +
		"- Fixo com DDD: (11) 3272-2864 (10 dígitos)\n" +
		"- Celular com DDD: (11) 99999-9999 (11 dígitos)"},
	{FieldSector, "filled"}:     {Title: titleRequired, Message: "Por favor, preencha o setor."},
	{FieldSector, "letters"}:    {Title: "Setor inválido", Message: "O setor deve conter apenas letras.\nNúmeros não são permitidos."},
	{FieldSpecialty, "filled"}:  {Title: titleRequired, Message: "Por favor, preencha a especialidade."},
	{FieldSpecialty, "letters"}: {Title: "Especialidade inválida", Message: "A especialidade deve conter apenas letras.\nNúmeros não são permitidos."},
}

var editMessages = messages{
	{FieldName, "filled"}:                 {Title: titleMissing, Message: "Por favor, preencha o nome do usuário."},
	{FieldEmail, "filled"}:                {Title: titleMissing, Message: "Por favor, preencha o email do usuário."},
	{FieldEmail, "contains"}:              {Title: "Email Inválido", Message: "Por favor, insira um email válido."},
	{FieldPhone, "filled"}:                {Title: titleMissing, Message: "Por favor, preencha o telefone do usuário."},
	{FieldVariant, "required"}:            {Title: titleMissing, Message: "Por favor, selecione o tipo de usuário."},
	{FieldSector, "filled"}:               {Title: titleMissing, Message: "Por favor, preencha o setor do usuário."},
	{FieldSpecialty, "filled"}:            {Title: titleMissing, Message: "Por favor, preencha a especialidade do técnico."},
	{FieldPassword, "filled"}:             {Title: titleMissing, Message: "Por favor, preencha a nova senha."},
	{FieldPassword, "min"}:                {Title: "Senha Fraca", Message: "A senha deve ter no mínimo 6 caracteres."},
	{FieldPasswordConfirm, "eqfield"}:     {Title: "Senhas Diferentes", Message: "A nova senha e a confirmação não coincidem."},
}

var ticketMessages = messages{
	{FieldTitle, "filled"}:    {Title: titleMissing, Message: "Por favor, preencha o título do chamado."},
	{FieldPriority, "filled"}: {Title: titleMissing, Message: "Por favor, selecione a prioridade."},
}
