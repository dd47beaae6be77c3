package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		title    string
		sourceID string
		date     *string
	}{
		{
			name:     "title and id, no date",
			file:     "Charla_Uno_[abc123].json",
			title:    "Charla Uno",
			sourceID: "abc123",
		},
		{
			name:     "title with date phrase",
			file:     "Sesión del 5 de marzo de 2021_[xyz9].json",
			title:    "Sesión del 5 de marzo de 2021",
			sourceID: "xyz9",
			date:     strPtr("05/03/21"),
		},
		{
			name:     "underscored date phrase two digit day",
			file:     "Clase_15_de_diciembre_de_1999_[q-_W1].json",
			title:    "Clase 15 de diciembre de 1999",
			sourceID: "q-_W1",
			date:     strPtr("15/12/99"),
		},
		{
			name:     "capitalized month",
			file:     "Acto 1 de Septiembre de 2020 [id].json",
			title:    "Acto 1 de Septiembre de 2020",
			sourceID: "id",
			date:     strPtr("01/09/20"),
		},
		{
			name:  "no brackets",
			file:  "Sin_identificador.json",
			title: "Sin identificador",
		},
		{
			name:     "last bracket wins",
			file:     "Parte_[2]_final_[vid42].json",
			title:    "Parte [2] final",
			sourceID: "vid42",
		},
		{
			name:     "bracket not at end stays in title",
			file:     "Parte_[2]_final.json",
			title:    "Parte [2] final",
			sourceID: "2",
		},
		{
			name:     "unknown month is not a date",
			file:     "Evento 3 de brumario de 2021 [x].json",
			title:    "Evento 3 de brumario de 2021",
			sourceID: "x",
		},
		{
			name:     "empty brackets",
			file:     "Vacio_[].json",
			title:    "Vacio",
			sourceID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFileName(tt.file, ".json")
			assert.Equal(t, tt.file, got.Name)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.sourceID, got.SourceID)
			assert.Equal(t, tt.date, got.Date)
		})
	}
}

func TestParseFileNameCustomExtension(t *testing.T) {
	got := ParseFileName("Charla_Uno_[abc123].segments", ".segments")
	assert.Equal(t, "Charla Uno", got.Title)
	assert.Equal(t, "abc123", got.SourceID)
	assert.Nil(t, got.Date)
}
