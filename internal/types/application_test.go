package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStatuses(t *testing.T) {
	statuses := AllStatuses()
	require.Len(t, statuses, 6)
	assert.Equal(t, StatusApplied, statuses[0])
	assert.Equal(t, ApplicationStatus("Candidatou-se"), StatusApplied)
	for _, s := range statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ApplicationStatus("Hired").Valid())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  ApplicationStatus
		ok    bool
	}{
		{"Candidatou-se", StatusApplied, true},
		{"applied", StatusApplied, true},
		{"Interviewing", StatusInterviewing, true},
		{"em entrevista", StatusInterviewing, true},
		{"  ghosted ", StatusGhosted, true},
		{"hired", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplication_Validate(t *testing.T) {
	valid := Application{
		ID:          "1",
		JobTitle:    "Backend Engineer",
		CompanyName: "Acme",
		DateApplied: "2024-01-10",
		Status:      StatusApplied,
	}
	assert.NoError(t, valid.Validate())

	withReminder := valid
	withReminder.ReminderDate = "2024-02-01"
	assert.NoError(t, withReminder.Validate())

	badStatus := valid
	badStatus.Status = "Hired"
	err := badStatus.Validate()
	require.Error(t, err)
	var invalid *InvalidEntityError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Status", invalid.Fields[0].Field)

	badDate := valid
	badDate.DateApplied = "10/01/2024"
	assert.Error(t, badDate.Validate())

	missing := valid
	missing.CompanyName = ""
	assert.Error(t, missing.Validate())
}

func TestCV_Validate(t *testing.T) {
	years := 3
	cv := CV{ID: "1", Name: "Backend", Content: "Go developer", YearsOfExperience: &years}
	assert.NoError(t, cv.Validate())

	negative := -1
	cv.YearsOfExperience = &negative
	assert.Error(t, cv.Validate())

	empty := CV{ID: "2", Name: "Empty"}
	assert.Error(t, empty.Validate())
}

func TestFindCV(t *testing.T) {
	cvs := []CV{{ID: "a", Name: "A", Content: "x"}, {ID: "b", Name: "B", Content: "y"}}

	cv, ok := FindCV(cvs, "b")
	assert.True(t, ok)
	assert.Equal(t, "B", cv.Name)

	_, ok = FindCV(cvs, "c")
	assert.False(t, ok)
}
