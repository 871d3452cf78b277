// Package extract 提供对属性包的防御式读取。
//
// 提供商条目的任意属性都可能缺失或处于故障态，映射层通过本包
// 读取原始属性，绝不让单个属性故障升级为整个实体的失败。
package extract

import (
	"reflect"

	"mailgate/backend/internal/ews"
)

// Safely 读取属性，缺失或故障一律降级为 nil，绝不报错。
func Safely(bag *ews.PropertyBag, prop string) any {
	if bag == nil {
		return nil
	}
	v, err := bag.Get(prop)
	if err != nil {
		return nil
	}
	return v
}

// FirstOf 按顺序尝试一组属性，返回第一个可用值。
//
// 序列值取其第一个元素，空序列视为不可用继续后备；标量值原样
// 返回；全部不可用时返回 def。纯函数，不产生任何日志。
func FirstOf(bag *ews.PropertyBag, props []string, def any) any {
	for _, prop := range props {
		v := Safely(bag, prop)
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			if rv.Len() == 0 {
				continue
			}
			return rv.Index(0).Interface()
		}
		return v
	}
	return def
}
