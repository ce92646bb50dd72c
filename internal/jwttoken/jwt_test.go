package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "riskengine/pkg/domain-errors"
)

type JWTServiceSuite struct {
	suite.Suite
	service *JWTService
}

func TestJWTServiceSuite(t *testing.T) {
	suite.Run(t, new(JWTServiceSuite))
}

func (s *JWTServiceSuite) SetupTest() {
	s.service = NewJWTService("test-signing-key", "riskengine")
}

func (s *JWTServiceSuite) TestRoundTrip() {
	token, err := s.service.GenerateAccessToken("assessor-1", "assessor", time.Hour)
	s.Require().NoError(err)
	s.NotEmpty(token)

	claims, err := s.service.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("assessor-1", claims.UserID)
	s.Equal("assessor", claims.Role)
	s.Equal("riskengine", claims.Issuer)
	s.NotEmpty(claims.ID)
}

func (s *JWTServiceSuite) TestValidateToken() {
	s.Run("garbage token", func() {
		_, err := s.service.ValidateToken("not.a.token")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("token signed with a different key", func() {
		other := NewJWTService("other-key", "riskengine")
		token, err := other.GenerateAccessToken("assessor-1", "", time.Hour)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("token from a different issuer", func() {
		other := NewJWTService("test-signing-key", "someone-else")
		token, err := other.GenerateAccessToken("assessor-1", "", time.Hour)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("expired token", func() {
		token, err := s.service.GenerateAccessToken("assessor-1", "", -time.Minute)
		s.Require().NoError(err)

		_, err = s.service.ValidateToken(token)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		s.Contains(err.Error(), "expired")
	})
}

func (s *JWTServiceSuite) TestAdapter() {
	adapter := NewJWTServiceAdapter(s.service)

	token, err := s.service.GenerateAccessToken("assessor-1", "admin", time.Hour)
	s.Require().NoError(err)

	claims, err := adapter.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("assessor-1", claims.UserID)
	s.Equal("admin", claims.Role)

	_, err = adapter.ValidateToken("garbage")
	s.Error(err)
}
