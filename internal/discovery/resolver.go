// Package discovery 通过分层 DNS 探测定位邮件域名背后的服务端点。
package discovery

import (
	"context"
	"net"
)

// Record 表示一条未规范化的 DNS 应答记录。
//
// 不同记录类型填充不同字段：SRV 填 Name/Port，地址记录填
// Address，MX 填 Exchange，TXT 只填 Value。
type Record struct {
	Type     string
	Value    string
	Address  string
	Name     string
	Exchange string
	Port     int
	TTL      int
}

// Resolver 是探测所依赖的 DNS 能力。任何实现的失败都只代表
// "没有记录"，探测层不会把解析错误向上传播。
type Resolver interface {
	// LookupSRV 查询 name 下的 SRV 记录。
	LookupSRV(ctx context.Context, name string) ([]Record, error)
	// LookupAny 查询 name 下的任意地址类记录。
	LookupAny(ctx context.Context, name string) ([]Record, error)
	// LookupMX 查询域名的 MX 记录。
	LookupMX(ctx context.Context, domain string) ([]Record, error)
}

// netResolver 是基于标准解析器的默认实现。
type netResolver struct {
	r *net.Resolver
}

// NewNetResolver 创建使用系统解析器的 Resolver。
func NewNetResolver() Resolver {
	return &netResolver{r: net.DefaultResolver}
}

func (n *netResolver) LookupSRV(ctx context.Context, name string) ([]Record, error) {
	_, srvs, err := n.r.LookupSRV(ctx, "", "", name)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(srvs))
	for _, srv := range srvs {
		records = append(records, Record{
			Type: "SRV",
			Name: srv.Target,
			Port: int(srv.Port),
		})
	}
	return records, nil
}

func (n *netResolver) LookupAny(ctx context.Context, name string) ([]Record, error) {
	addrs, err := n.r.LookupIPAddr(ctx, name)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(addrs))
	for _, addr := range addrs {
		records = append(records, Record{
			Type:    "A",
			Address: addr.IP.String(),
		})
	}
	return records, nil
}

func (n *netResolver) LookupMX(ctx context.Context, domain string) ([]Record, error) {
	mxs, err := n.r.LookupMX(ctx, domain)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(mxs))
	for _, mx := range mxs {
		records = append(records, Record{
			Type:     "MX",
			Exchange: mx.Host,
		})
	}
	return records, nil
}
