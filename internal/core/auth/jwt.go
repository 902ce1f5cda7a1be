package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/segmentio/ksuid"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"

	TypeAccess = "access"
	TypeAdmin  = "admin" // 固定凭证签发，不对应数据库用户
)

// ErrInvalidToken 签名不符、格式错误、过期统一返回
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role string `json:"role"`
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

// IsAdminClaim 只看声明本身，不查库
func (c *Claims) IsAdminClaim() bool { return c.Role == RoleAdmin }

type JWTer struct {
	Secret    []byte
	Algorithm string // HS256 / HS384 / HS512，默认 HS256
	Issuer    string
	TTL       time.Duration
	Leeway    time.Duration
	Now       func() time.Time // 测试注入
}

func (j *JWTer) method() (jwt.SigningMethod, error) {
	alg := j.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	m := jwt.GetSigningMethod(alg)
	if _, ok := m.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	return m, nil
}

func (j *JWTer) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// Issue 签发用户 token；ttl<=0 用默认 TTL
func (j *JWTer) Issue(subject, role string, ttl time.Duration) (string, error) {
	return j.sign(subject, role, TypeAccess, ttl)
}

// IssueAdmin 签发管理员 token（typ=admin）
func (j *JWTer) IssueAdmin(username string) (string, error) {
	return j.sign(username, RoleAdmin, TypeAdmin, 0)
}

func (j *JWTer) sign(subject, role, typ string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}
	m, err := j.method()
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = j.TTL
	}
	now := j.now()
	claims := Claims{
		Role: role,
		Type: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    j.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        ksuid.New().String(),
		},
	}
	return jwt.NewWithClaims(m, claims).SignedString(j.Secret)
}

// Parse 校验签名/算法/签发者/过期；任何失败都是 ErrInvalidToken
func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	m, err := j.method()
	if err != nil {
		return nil, err
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.Issuer))
	}
	if j.Leeway > 0 {
		opts = append(opts, jwt.WithLeeway(j.Leeway))
	}

	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return j.Secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	return c, nil
}
