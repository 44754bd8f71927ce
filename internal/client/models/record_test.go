package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Record
		wantErr bool
	}{
		{
			name: "zoneless timestamp is UTC",
			in:   `{"id":1,"url":"http://a","prediction":true,"confidence":0.91,"timestamp":"2024-03-01T10:15:00.123456"}`,
			want: Record{ID: 1, URL: "http://a", Prediction: true, Confidence: 0.91,
				Timestamp: time.Date(2024, 3, 1, 10, 15, 0, 123456000, time.UTC)},
		},
		{
			name: "rfc3339 converted to UTC",
			in:   `{"id":2,"url":"u","prediction":false,"confidence":0.1,"timestamp":"2024-03-01T12:00:00+02:00"}`,
			want: Record{ID: 2, URL: "u", Confidence: 0.1, Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
		{
			name: "nulls decode to zero values",
			in:   `{"id":3,"url":"[EMAIL]","prediction":null,"confidence":null,"timestamp":null}`,
			want: Record{ID: 3, URL: "[EMAIL]"},
		},
		{
			name:    "bad timestamp",
			in:      `{"id":4,"url":"u","timestamp":"yesterday"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			err := json.Unmarshal([]byte(tt.in), &r)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, r.ID)
			assert.Equal(t, tt.want.URL, r.URL)
			assert.Equal(t, tt.want.Prediction, r.Prediction)
			assert.Equal(t, tt.want.Confidence, r.Confidence)
			assert.True(t, tt.want.Timestamp.Equal(r.Timestamp), "got %v", r.Timestamp)
		})
	}
}

func TestRecord_Label(t *testing.T) {
	assert.Equal(t, "Phishing", Record{Prediction: true}.Label())
	assert.Equal(t, "Safe", Record{}.Label())
}

func TestSummary_Accuracy(t *testing.T) {
	pct, ok := Summary{TotalFeedback: 3, Phishing: 1}.Accuracy()
	assert.True(t, ok)
	assert.Equal(t, 66.7, pct)

	_, ok = Summary{}.Accuracy()
	assert.False(t, ok)
}

func TestTipList_Zip(t *testing.T) {
	tips, err := TipList{Tips: []string{"a", "b"}, IDs: []int64{7, 9}}.Zip()
	require.NoError(t, err)
	assert.Equal(t, []Tip{{ID: 7, Content: "a"}, {ID: 9, Content: "b"}}, tips)

	_, err = TipList{Tips: []string{"a"}}.Zip()
	require.Error(t, err)
}

func TestQuarantinedEmail_UnmarshalJSON(t *testing.T) {
	var q QuarantinedEmail
	err := json.Unmarshal([]byte(`{"id":5,"user_id":2,"email_content":"click here","reason":"phishing","status":"pending","timestamp":"2024-01-02T03:04:05"}`), &q)
	require.NoError(t, err)
	assert.Equal(t, int64(5), q.ID)
	assert.Equal(t, "click here", q.Content)
	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), q.Timestamp)
}
