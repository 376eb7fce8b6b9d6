package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name       string `validate:"required"`
	Department string `validate:"max=64"`
	GradeFrom  int    `validate:"gte=1,lte=12"`
	GradeTo    int    `validate:"gtefield=GradeFrom"`
}

func TestValidate_Success(t *testing.T) {
	s := testStruct{Name: "Thay Long", Department: "Toan", GradeFrom: 6, GradeTo: 9}
	err := Validate(s)
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	s := testStruct{Department: "Toan", GradeFrom: 6, GradeTo: 9}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Equal(t, "is required", fields["Name"])
}

func TestValidate_OutOfRange(t *testing.T) {
	s := testStruct{Name: "Thay Long", GradeFrom: 20, GradeTo: 20}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "GradeFrom")
	assert.Contains(t, fields["GradeFrom"], "12")
}

func TestValidate_GradeToBelowGradeFrom(t *testing.T) {
	s := testStruct{Name: "Thay Long", GradeFrom: 9, GradeTo: 6}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "GradeTo")
	assert.Contains(t, fields["GradeTo"], "GradeFrom")
}

func TestValidate_MultipleErrors(t *testing.T) {
	s := testStruct{GradeFrom: 0, GradeTo: 0}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Name")
	assert.Contains(t, fields, "GradeFrom")
}

func TestValidationError_ErrorString(t *testing.T) {
	s := testStruct{GradeFrom: 1, GradeTo: 1}
	err := Validate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Name'")
	assert.Contains(t, err.Error(), "is required")
}

type oneofStruct struct {
	Type string `validate:"oneof=PROFESSOR CLASS SCHOOL"`
}

func TestValidate_OneOf(t *testing.T) {
	s := oneofStruct{Type: "UNIVERSITY"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields["Type"], "one of")
}

func TestValidate_OneOf_Valid(t *testing.T) {
	for _, typ := range []string{"PROFESSOR", "CLASS", "SCHOOL"} {
		assert.NoError(t, Validate(oneofStruct{Type: typ}))
	}
}

type urlStruct struct {
	Links string `validate:"omitempty,url"`
}

func TestValidate_URL(t *testing.T) {
	require.NoError(t, Validate(urlStruct{Links: "https://example.com/prof"}))
	require.NoError(t, Validate(urlStruct{}))

	err := Validate(urlStruct{Links: "::not-a-url"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid URL", valErr.Fields()["Links"])
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := `{"Name":"Thay Long","Department":"Toan","GradeFrom":6,"GradeTo":9}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var s testStruct
	err := DecodeAndValidate(req, &s)

	require.NoError(t, err)
	assert.Equal(t, "Thay Long", s.Name)
	assert.Equal(t, 6, s.GradeFrom)
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))

	var s testStruct
	err := DecodeAndValidate(req, &s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_ValidationFails(t *testing.T) {
	body := `{"Name":"","GradeFrom":6,"GradeTo":9}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var s testStruct
	err := DecodeAndValidate(req, &s)

	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
