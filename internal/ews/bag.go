// Package ews 定义群件提供商的原始对象模型与会话边界。
//
// 提供商返回的条目是属性包：属性可能存在、缺失，也可能单独
// 处于故障态（取值即报错）。规范化层只通过属性包读取原始数据，
// 永远不直接依赖具体的会话实现。
package ews

import (
	"errors"
	"fmt"
)

// ErrPropertyMissing 表示属性不存在于属性包中。
var ErrPropertyMissing = errors.New("属性不存在")

// PropertyBag 保存一个原始条目的全部属性及各属性的故障态。
type PropertyBag struct {
	props  map[string]any
	faults map[string]error
}

// NewPropertyBag 创建空属性包。
func NewPropertyBag() *PropertyBag {
	return &PropertyBag{
		props:  make(map[string]any),
		faults: make(map[string]error),
	}
}

// Set 写入属性值并清除其故障态。
func (b *PropertyBag) Set(name string, value any) {
	b.props[name] = value
	delete(b.faults, name)
}

// SetFault 把属性标记为故障态，此后读取该属性将返回错误。
func (b *PropertyBag) SetFault(name string, err error) {
	b.faults[name] = err
	delete(b.props, name)
}

// Get 读取属性。故障态属性返回其故障错误，缺失属性返回
// ErrPropertyMissing。
func (b *PropertyBag) Get(name string) (any, error) {
	if err, ok := b.faults[name]; ok {
		return nil, fmt.Errorf("属性 %s 读取失败: %w", name, err)
	}
	v, ok := b.props[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPropertyMissing, name)
	}
	return v, nil
}

// Has 报告属性是否存在且未处于故障态。
func (b *PropertyBag) Has(name string) bool {
	_, ok := b.props[name]
	return ok
}

// Names 返回所有可读属性名，仅用于日志与调试。
func (b *PropertyBag) Names() []string {
	names := make([]string, 0, len(b.props))
	for name := range b.props {
		names = append(names, name)
	}
	return names
}
