package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxturnos/turnos-service/internal/domain"
)

func TestLoad_DefaultCatalog(t *testing.T) {
	tpl, err := Load("../../seed/default_catalog.yaml")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, tpl.Business.OpenDays)
	assert.Len(t, tpl.Services, 3)
	assert.Len(t, tpl.Staff, 2)

	staff := tpl.StaffFor("barberia-centro")
	require.NotNil(t, staff[0].CertificateTitle)
	assert.Equal(t, "Maestro Barbero", *staff[0].CertificateTitle)
	assert.Nil(t, staff[1].CertificateTitle)
}

func TestParse_RejectsUndeclaredCategory(t *testing.T) {
	_, err := Parse([]byte(`
business:
  categories: [Cortes]
services:
  - name: Manicura
    category: Uñas
`))
	assert.Error(t, err)
}

func TestApplyTo_KeepsExplicitValues(t *testing.T) {
	tpl, err := Parse([]byte(`
business:
  open_days: [1, 2, 3]
  opening_time: "10:00"
  closing_time: "19:00"
  categories: [Cortes]
`))
	require.NoError(t, err)

	b := &domain.Business{Code: "x", OpeningTime: "08:00"}
	tpl.ApplyTo(b)

	assert.Equal(t, "08:00", b.OpeningTime)
	assert.Equal(t, "19:00", b.ClosingTime)
	assert.Equal(t, []int{1, 2, 3}, b.OpenDays)
	assert.Equal(t, domain.DefaultSaturdayClosingTime, b.SaturdayClosingTime)
	assert.Equal(t, []string{"Cortes"}, b.Categories)
}
