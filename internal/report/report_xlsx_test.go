package report_test

import (
	"bytes"
	"testing"

	"obracheck/internal/attendance"
	"obracheck/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestRenderXLSX(t *testing.T) {
	roster := attendance.Roster{
		{WorkerID: 1, WorkerName: "Ana Quispe", CI: "4455667", Status: attendance.StatusPresent},
		{WorkerID: 3, WorkerName: "Rosa Choque", CI: "9988776", Status: attendance.StatusLate},
	}

	data, err := report.RenderXLSX(meta, roster)
	assert.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if !assert.NoError(t, err) {
		return
	}
	defer file.Close()

	rows, err := file.GetRows("Asistencia")
	assert.NoError(t, err)

	assert.Equal(t, []string{"Registro de asistencia"}, rows[0])
	assert.Equal(t, []string{"Obra", "Obra Norte", "ID", "7"}, rows[1])
	assert.Equal(t, []string{"#", "Trabajador", "CI", "Estado"}, rows[4])
	assert.Equal(t, []string{"1", "Ana Quispe", "4455667", "Presente"}, rows[5])
	assert.Equal(t, []string{"2", "Rosa Choque", "9988776", "Tarde"}, rows[6])
	assert.Equal(t, []string{"Total", "2"}, rows[8])
	assert.Equal(t, []string{"Sin registrar", "0"}, rows[9])
	assert.Equal(t, []string{"Tarde", "1"}, rows[12])
}
