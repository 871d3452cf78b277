package extract

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mailgate/backend/internal/ews"
)

func newBag(props map[string]any, faults map[string]error) *ews.PropertyBag {
	bag := ews.NewPropertyBag()
	for k, v := range props {
		bag.Set(k, v)
	}
	for k, err := range faults {
		bag.SetFault(k, err)
	}
	return bag
}

func TestSafely(t *testing.T) {
	bag := newBag(
		map[string]any{"Subject": "hello"},
		map[string]error{"IsRead": errors.New("provider fault")},
	)

	t.Run("正常属性", func(t *testing.T) {
		assert.Equal(t, "hello", Safely(bag, "Subject"))
	})

	t.Run("故障属性降级为 nil", func(t *testing.T) {
		assert.Nil(t, Safely(bag, "IsRead"))
	})

	t.Run("缺失属性降级为 nil", func(t *testing.T) {
		assert.Nil(t, Safely(bag, "Nope"))
	})

	t.Run("nil 属性包", func(t *testing.T) {
		assert.Nil(t, Safely(nil, "Subject"))
	})
}

func TestFirstOf(t *testing.T) {
	t.Run("按顺序取第一个可用值", func(t *testing.T) {
		bag := newBag(map[string]any{
			"From": &ews.Mailbox{Name: "fallback"},
		}, map[string]error{
			"Sender": errors.New("fault"),
		})
		v := FirstOf(bag, []string{"Sender", "From"}, nil)
		assert.Equal(t, "fallback", AsMailbox(v).Name)
	})

	t.Run("序列取首个元素", func(t *testing.T) {
		bag := newBag(map[string]any{
			"ToRecipients": []*ews.Mailbox{{Name: "first"}, {Name: "second"}},
		}, nil)
		v := FirstOf(bag, []string{"ToRecipients"}, nil)
		assert.Equal(t, "first", AsMailbox(v).Name)
	})

	t.Run("空序列继续后备", func(t *testing.T) {
		bag := newBag(map[string]any{
			"ToRecipients": []*ews.Mailbox{},
			"ReceivedBy":   &ews.Mailbox{Name: "next"},
		}, nil)
		v := FirstOf(bag, []string{"ToRecipients", "ReceivedBy"}, nil)
		assert.Equal(t, "next", AsMailbox(v).Name)
	})

	t.Run("全部缺失返回默认值", func(t *testing.T) {
		bag := newBag(nil, nil)
		def := &ews.Mailbox{}
		assert.Equal(t, def, FirstOf(bag, []string{"Sender", "From"}, def))
		assert.Nil(t, FirstOf(bag, []string{"Sender"}, nil))
	})
}

func TestCoercers(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "x", AsString("x"))
	assert.Equal(t, "", AsString(42))
	assert.True(t, AsBool(true))
	assert.False(t, AsBool("true"))
	assert.Equal(t, 7, AsInt(7))
	assert.Equal(t, 7, AsInt(float64(7)))
	assert.Equal(t, now.Unix(), AsTime(now).Unix())
	assert.Nil(t, AsTime(time.Time{}))
	assert.Nil(t, AsTime("2020-01-01"))
	assert.Nil(t, AsMailbox("not a mailbox"))
	assert.Nil(t, AsItemID(nil))
}
