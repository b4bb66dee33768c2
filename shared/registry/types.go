// shared/registry/types.go
package registry

import "time"

// ServiceInfo represents the details of a registered service instance.
// This information is stored in Redis and used for service discovery.
type ServiceInfo struct {
	ServiceID   string            `json:"serviceId"`
	ServiceType string            `json:"serviceType"`
	IP          string            `json:"ip"`
	Port        int               `json:"port"`
	LastSeen    int64             `json:"last_seen"` // epoch milliseconds
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// LastSeenTime returns LastSeen as a time.
func (si ServiceInfo) LastSeenTime() time.Time {
	return time.UnixMilli(si.LastSeen)
}
