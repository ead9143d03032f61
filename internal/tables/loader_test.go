package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/PMithila/Group-PPA/pkg/errors"
)

func writeTables(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFromJSONFullDocument(t *testing.T) {
	path := writeTables(t, `{
		"teachers": [{"id": "T1", "name": "Alice"}],
		"subjects": [{"id": "math", "name": "Math", "teacher_id": "T1", "periods_per_week": 3}],
		"rooms": [{"id": "R1"}],
		"availability": [{"teacher_id": "T1", "day": 0, "start": "08:00", "end": "12:00"}],
		"config": {"days": [0, 1], "start": "08:00", "end": "13:00", "slot_minutes": 60}
	}`)

	set, err := FromJSON(path)
	require.NoError(t, err)

	require.Len(t, set.Teachers, 1)
	assert.Equal(t, "Alice", set.Teachers[0].Name)
	require.Len(t, set.Subjects, 1)
	require.NotNil(t, set.Subjects[0].TeacherID)
	assert.Equal(t, "T1", *set.Subjects[0].TeacherID)
	assert.Equal(t, 3, set.Subjects[0].PeriodsPerWeek)
	require.Len(t, set.Availability, 1)
	assert.Equal(t, 0, set.Availability[0].Day)
	require.NotNil(t, set.Config)
	assert.Equal(t, []int{0, 1}, set.Config.Days)
	assert.Equal(t, 60, set.Config.SlotMinutes)
}

func TestFromJSONMissingTablesDefaultEmpty(t *testing.T) {
	set, err := FromJSON(writeTables(t, `{"subjects": []}`))
	require.NoError(t, err)

	assert.Empty(t, set.Teachers)
	assert.Empty(t, set.Subjects)
	assert.Empty(t, set.Rooms)
	assert.Nil(t, set.Config)
}

func TestFromJSONWeakTyping(t *testing.T) {
	// Numeric fields arriving as strings still decode.
	path := writeTables(t, `{
		"subjects": [{"id": "math", "periods_per_week": "4"}],
		"availability": [{"teacher_id": "T1", "day": "2", "start": "08:00", "end": "09:00"}]
	}`)

	set, err := FromJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 4, set.Subjects[0].PeriodsPerWeek)
	assert.Equal(t, 2, set.Availability[0].Day)
}

func TestFromJSONUnreadableFile(t *testing.T) {
	_, err := FromJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInputShape.Code, appErrors.FromError(err).Code)
}

func TestFromJSONNonObjectDocument(t *testing.T) {
	_, err := FromJSON(writeTables(t, `[1, 2, 3]`))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInputShape.Code, appErrors.FromError(err).Code)
}
