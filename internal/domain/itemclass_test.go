package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyItem(t *testing.T) {
	t.Run("普通邮件", func(t *testing.T) {
		assert.Equal(t, KindMessage, ClassifyItem("IPM.Note"))
		assert.Equal(t, KindMessage, ClassifyItem(""))
	})

	t.Run("会议请求归为日历条目", func(t *testing.T) {
		assert.Equal(t, KindEvent, ClassifyItem("IPM.Schedule.Meeting.Request"))
		assert.Equal(t, KindEvent, ClassifyItem("IPM.Schedule.Meeting.Canceled"))
	})

	t.Run("会议答复单独归类", func(t *testing.T) {
		assert.Equal(t, KindResponse, ClassifyItem("IPM.Schedule.Meeting.Resp.Pos"))
		assert.Equal(t, KindResponse, ClassifyItem("IPM.Schedule.Meeting.Resp.Neg"))
		assert.Equal(t, KindResponse, ClassifyItem("IPM.Schedule.Meeting.Resp.Tent"))
	})

	t.Run("链接前缀", func(t *testing.T) {
		assert.Equal(t, "/messages/", KindMessage.TypePrefix())
		assert.Equal(t, "/events/", KindEvent.TypePrefix())
		assert.Equal(t, "/events/", KindResponse.TypePrefix())
	})
}

func TestMapResponseCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Accept", "accepted"},
		{"Decline", "declined"},
		{"Tentative", "tentative accepted"},
		{"Organizer", "organizer"},
		{"Maybe", "maybe"},
		{"NoResponseReceived", "noresponsereceived"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MapResponseCode(c.in), c.in)
	}
}
