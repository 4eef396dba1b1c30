package cmd

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psds-microservice/suptec-client/internal/apiclient"
	"github.com/psds-microservice/suptec-client/internal/validate"
	"github.com/psds-microservice/suptec-client/internal/workflow"
)

func testPrompter(input string, yes bool) (*cliPrompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &cliPrompter{in: bufio.NewReader(strings.NewReader(input)), out: out, yes: yes}, out
}

func TestCLIPrompterConfirm(t *testing.T) {
	cases := []struct {
		input string
		yes   bool
		want  bool
	}{
		{"s\n", false, true},
		{"Sim\n", false, true},
		{"y\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}
	for _, tc := range cases {
		p, out := testPrompter(tc.input, tc.yes)
		assert.Equal(t, tc.want, p.Confirm("Confirmar Exclusão", "Deseja excluir?"), "input %q", tc.input)
		assert.Contains(t, out.String(), "Confirmar Exclusão")
	}
}

func TestCLIPrompterResult(t *testing.T) {
	p, out := testPrompter("", false)
	assert.NoError(t, p.result(nil))
	assert.NoError(t, p.result(workflow.ErrDeclined))
	assert.Contains(t, out.String(), "Operação cancelada.")

	assert.ErrorIs(t, p.result(&validate.FieldError{Field: "nome"}), errReported)
	assert.ErrorIs(t, p.result(workflow.ErrNoSelection), workflow.ErrNoSelection)

	p.Error("Erro ao Excluir", "falhou")
	assert.ErrorIs(t, p.result(nil), errReported)
}

func TestCredentials(t *testing.T) {
	t.Setenv("SUPTEC_EMAIL", "")
	t.Setenv("SUPTEC_PASSWORD", "")
	flagEmail, flagPass = "", ""

	email, pass, err := credentials(bufio.NewReader(strings.NewReader("gerente@suptec.com\nsegredo\n")), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "gerente@suptec.com", email)
	assert.Equal(t, "segredo", pass)

	t.Setenv("SUPTEC_EMAIL", "env@suptec.com")
	t.Setenv("SUPTEC_PASSWORD", "envpass")
	email, pass, err = credentials(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "env@suptec.com", email)
	assert.Equal(t, "envpass", pass)

	t.Setenv("SUPTEC_EMAIL", "")
	t.Setenv("SUPTEC_PASSWORD", "")
	_, _, err = credentials(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestLoginError(t *testing.T) {
	assert.Contains(t, loginError(apiclient.StatusTransportError).Error(), "contactar o servidor")
	assert.Contains(t, loginError(401).Error(), "inválidos")
	assert.Contains(t, loginError(500).Error(), "HTTP 500")
	assert.False(t, errors.Is(loginError(401), errReported))
}

func TestCredentialsAndConfirmShareInput(t *testing.T) {
	t.Setenv("SUPTEC_EMAIL", "")
	t.Setenv("SUPTEC_PASSWORD", "")
	flagEmail, flagPass = "", ""

	in := bufio.NewReader(strings.NewReader("gerente@suptec.com\nsegredo\ns\n"))
	email, pass, err := credentials(in, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "gerente@suptec.com", email)
	assert.Equal(t, "segredo", pass)

	p := &cliPrompter{in: in, out: &bytes.Buffer{}}
	assert.True(t, p.Confirm("Confirmar Exclusão", "Deseja excluir?"))
}
