package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type rosterRow struct {
	Activity string    `excel:"Activity"`
	Email    string    `excel:"Email"`
	Secret   string    `excel:"-"`
	Since    time.Time `excel:"Enrolled At"`
	Grade    *string
}

func TestExportToExcel(t *testing.T) {
	grade := "10"
	rows := []rosterRow{
		{Activity: "Chess Club", Email: "michael@mergington.edu", Secret: "x", Since: time.Date(2024, 9, 1, 15, 30, 0, 0, time.UTC), Grade: &grade},
		{Activity: "Art Club", Email: "amelia@mergington.edu"},
	}

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, ExportToExcel(f, "Roster", rows))

	got, err := f.GetRows("Roster")
	require.NoError(t, err)
	require.Equal(t, []string{"Activity", "Email", "Enrolled At", "Grade"}, got[0])
	require.Equal(t, []string{"Chess Club", "michael@mergington.edu", "2024-09-01 15:30:00", "10"}, got[1])
	require.Equal(t, "Art Club", got[2][0])
	require.Equal(t, "amelia@mergington.edu", got[2][1])
}

func TestExportToExcelRejectsNonSlice(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.Error(t, ExportToExcel(f, "", rosterRow{}))
	require.Error(t, ExportToExcel(f, "", []int{1, 2}))
}
