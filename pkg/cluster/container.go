package cluster

import "github.com/nodepool-sched/leafqueue/pkg/resource"

// LocalityType is the placement tier a container was granted at.
type LocalityType int

const (
	DataLocal LocalityType = iota
	RackLocal
	OffSwitch
)

func (l LocalityType) String() string {
	switch l {
	case DataLocal:
		return "DATA_LOCAL"
	case RackLocal:
		return "RACK_LOCAL"
	case OffSwitch:
		return "OFF_SWITCH"
	default:
		return "UNKNOWN"
	}
}

// ContainerID identifies a container within its owning application.
type ContainerID struct {
	AppID string
	Seq   int64
}

// ContainerToken is the security credential minted for a container when
// the queue runs with security enabled (§4.5). Password is produced by
// an injected SecretManager; the token is omitted entirely otherwise.
type ContainerToken struct {
	Identifier []byte
	Kind       string
	Password   []byte
	Service    string
}

// Container is a single granted slice of a node's memory.
type Container struct {
	ID         ContainerID
	HostName   string
	Capability resource.Resource
	Token      *ContainerToken
}
