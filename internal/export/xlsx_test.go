package export_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"scanstation/internal/domain"
	"scanstation/internal/export"
)

func TestWriteRecentScans(t *testing.T) {
	entries := []domain.RecentScanEntry{
		{
			ID:             uuid.New(),
			DisplayType:    "ガソリン",
			Icon:           "⛽",
			Name:           "ENEOS 環七店 - レギュラー 45L",
			TimestampLabel: "12/1 09:30",
		},
		{
			ID:             uuid.New(),
			DisplayType:    "レンタル伝票",
			Icon:           "🔧",
			Name:           "ニッケン - タイヤローラー",
			TimestampLabel: "11/30 16:45",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteRecentScans(&buf, entries))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"最近の読取"}, f.GetSheetList())

	rows, err := f.GetRows("最近の読取")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"種別", "名称", "読取日時"}, rows[0])
	assert.Equal(t, "⛽ ガソリン", rows[1][0])
	assert.Equal(t, "ENEOS 環七店 - レギュラー 45L", rows[1][1])
	assert.Equal(t, "12/1 09:30", rows[1][2])
	assert.Equal(t, "🔧 レンタル伝票", rows[2][0])
}

func TestWriteRecentScans_EmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteRecentScans(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("最近の読取")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"種別", "名称", "読取日時"}, rows[0])
}
