// Package mapper 把提供商原始对象翻译为对外实体模型。
//
// 每个映射函数都是全函数：无论输入缺了什么，返回的要么是完整
// 实体，要么是该实体位置上的错误占位，绝不让异常越过映射边界
// 影响同批次的其他实体。
package mapper

import (
	"fmt"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"mailgate/backend/internal/codec"
	"mailgate/backend/internal/domain"
	"mailgate/backend/internal/ews"
	"mailgate/backend/internal/extract"
	"mailgate/backend/internal/monitoring"
)

// Mapper 承载映射所需的日志与指标依赖，映射本身无状态。
type Mapper struct {
	logger  *zap.Logger
	metrics *monitoring.Metrics
}

// New 创建映射器。
func New(logger *zap.Logger, metrics *monitoring.Metrics) *Mapper {
	return &Mapper{logger: logger, metrics: metrics}
}

// contain 执行单个实体的映射并吸收其中的 panic：任何失败都
// 降级为错误占位，同批次其他实体不受影响。
func (m *Mapper) contain(entity string, fn func() any) (result any) {
	defer func() {
		if r := recover(); r != nil {
			m.metrics.RecordMappingFailure(entity)
			m.logger.Warn("实体映射失败",
				zap.String("entity", entity),
				zap.Any("cause", r))
			result = domain.NewErrorStub(fmt.Sprint(r), string(debug.Stack()))
		}
	}()
	return fn()
}

// mustID 读取必填的条目标识，缺失即中止当前实体的映射。
func mustID(bag *ews.PropertyBag, name string) *ews.ItemID {
	id := extract.AsItemID(extract.Safely(bag, name))
	if id == nil || id.UniqueID == "" {
		panic("缺少条目标识 " + name)
	}
	return id
}

// mustEncode 把原生标识转码为对外标识，转码失败即中止映射。
func mustEncode(native string) string {
	external, err := codec.EncodeID(native)
	if err != nil {
		panic(err.Error())
	}
	return external
}

// party 把邮箱参与方转为弱引用参与者。
func party(mb *ews.Mailbox) *domain.Party {
	if mb == nil {
		return nil
	}
	p := &domain.Party{
		Ref:     codec.UserLink(mb.Name, mb.Address),
		Email:   mb.Address,
		Trusted: mb.Trusted(),
	}
	if mb.Name != "" {
		p.Name = &domain.UserName{Full: mb.Name}
	}
	return p
}

// recipientList 把参与方序列压成收件人列表。
func recipientList(mbs []*ews.Mailbox) []domain.Recipient {
	if len(mbs) == 0 {
		return nil
	}
	out := make([]domain.Recipient, 0, len(mbs))
	for _, mb := range mbs {
		if mb == nil {
			continue
		}
		out = append(out, domain.Recipient{Name: mb.Name, Email: mb.Address})
	}
	return out
}

// lowerOr 小写字符串，为空时取默认值。
func lowerOr(s, def string) string {
	if s == "" {
		return def
	}
	return strings.ToLower(s)
}
