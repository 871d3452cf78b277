package service

import (
	"context"
	"fmt"
	"time"

	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
)

// eventWindow 日历列表默认覆盖从现在起一周。
const eventWindow = 7 * 24 * time.Hour

// ListEvents 列出未来一周的日历条目。
func (s *Mailbox) ListEvents(ctx context.Context, sess ews.Session) ([]any, error) {
	now := time.Now()
	view := ews.CalendarView{Start: now, End: now.Add(eventWindow)}

	start := time.Now()
	items, err := sess.FindCalendarItems(ctx, view, ews.EventProperties)
	s.call("find_calendar_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("列出日历条目失败: %w", err)
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		// 列表场景没有逐条的日程视图，答复状态整体省略。
		out = append(out, s.mapper.Event(item, nil))
	}
	return out, nil
}

// GetEvent 取回单个日历条目，连同其日程视图上的答复状态。
func (s *Mailbox) GetEvent(ctx context.Context, sess ews.Session, externalID string) (any, error) {
	id, err := nativeID(externalID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	item, err := sess.BindItem(ctx, *id, ews.EventProperties)
	s.call("bind_item", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, externalID)
	}

	start = time.Now()
	appointment, err := sess.BindAppointment(ctx, *id)
	s.call("bind_appointment", start, err)
	if err != nil {
		// 日程视图缺席不拦截条目本身，答复状态省略即可。
		appointment = nil
	}
	return s.mapper.Event(item, appointment), nil
}

// RespondEvent 对会议邀请作出答复并返回更新后的实体。
// 失败原样上抛。
func (s *Mailbox) RespondEvent(ctx context.Context, sess ews.Session, externalID, response string) (any, error) {
	var meetingResponse ews.MeetingResponse
	switch response {
	case "accept", "accepted":
		meetingResponse = ews.RespondAccept
	case "decline", "declined":
		meetingResponse = ews.RespondDecline
	case "tentative", "tentative accepted":
		meetingResponse = ews.RespondTentative
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnclearResponse, response)
	}

	id, err := nativeID(externalID)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	item, err := sess.BindItem(ctx, *id, ews.EventProperties)
	s.call("bind_item", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, externalID)
	}

	start = time.Now()
	err = sess.RespondToMeeting(ctx, *id, meetingResponse)
	s.call("respond_to_meeting", start, err)
	if err != nil {
		return nil, fmt.Errorf("提交会议答复失败: %w", err)
	}

	// 用刚提交的答复合成日程视图，免去一次往返。
	appointment := &ews.Item{Bag: ews.NewPropertyBag()}
	appointment.Bag.Set("MyResponseType", string(meetingResponse))
	result := s.mapper.Event(item, appointment)
	if ev, ok := result.(*domain.Event); ok {
		ev.Response = domain.MapResponseCode(string(meetingResponse))
	}
	return result, nil
}
