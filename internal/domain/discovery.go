package domain

// ServiceEndpoint 表示一条已解析的服务端点记录。
type ServiceEndpoint struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	TTL  int    `json:"ttl"`
}

// DiscoveryResult 表示针对某个邮件域名的端点探测结果。
//
// 任意字段都可能为 nil：某类记录解析失败只代表"该服务不存在"，
// 不代表整次探测失败。
type DiscoveryResult struct {
	Domain   string           `json:"domain"`
	Exchange *ServiceEndpoint `json:"exchange"`
	IMAPS    *ServiceEndpoint `json:"imaps"`
	LDAP     *ServiceEndpoint `json:"ldap"`
	SMTP     *ServiceEndpoint `json:"smtp"`
}
