package domain

import (
	"fmt"
	"strings"
)

type ActorKind uint8

const (
	ActorUser ActorKind = iota + 1
	ActorAnonymous
)

func (k ActorKind) String() string {
	switch k {
	case ActorUser:
		return "user"
	case ActorAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Actor 点赞/评分的发起方：User(id) 或 Anonymous(address)，二者互斥。
// 同一地址后的多个匿名访客（NAT/代理）会被视为同一个 actor。
type Actor struct {
	kind    ActorKind
	userID  uint
	address string
}

func UserActor(id uint) Actor { return Actor{kind: ActorUser, userID: id} }

func AnonymousActor(address string) Actor {
	return Actor{kind: ActorAnonymous, address: strings.TrimSpace(address)}
}

func (a Actor) Kind() ActorKind { return a.kind }

func (a Actor) UserID() (uint, bool) { return a.userID, a.kind == ActorUser }

func (a Actor) Address() (string, bool) { return a.address, a.kind == ActorAnonymous }

func (a Actor) IsAnonymous() bool { return a.kind == ActorAnonymous }

// Validate 匿名必须有地址，用户必须有 id
func (a Actor) Validate() error {
	switch a.kind {
	case ActorUser:
		if a.userID == 0 {
			return Validation("actor user id is empty")
		}
	case ActorAnonymous:
		if a.address == "" {
			return ErrUnknownAddress
		}
	default:
		return Validation("actor is not set")
	}
	return nil
}

func (a Actor) String() string {
	switch a.kind {
	case ActorUser:
		return fmt.Sprintf("user:%d", a.userID)
	case ActorAnonymous:
		return "anonymous:" + a.address
	default:
		return "unknown"
	}
}
