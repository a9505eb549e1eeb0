package auth

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/guessfilm/internal/dependencies/mocks"
)

const testKey = "gf_testkey"

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	hash    string
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()

	h, err := bcrypt.GenerateFromPassword([]byte(testKey), bcrypt.MinCost)
	s.Require().NoError(err)
	s.hash = string(h)

	s.service, err = New(s.hash, s.random)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestVerifyAcceptsMatchingKey() {
	s.True(s.service.Enabled())
	s.NoError(s.service.Verify(testKey))
	// second call hits the verified cache
	s.NoError(s.service.Verify(testKey))
}

func (s *ServiceSuite) TestVerifyRejectsWrongKey() {
	s.ErrorIs(s.service.Verify("gf_other"), ErrInvalidAPIKey)
}

func (s *ServiceSuite) TestVerifyRejectsEmptyKey() {
	s.ErrorIs(s.service.Verify(""), ErrInvalidAPIKey)
}

func (s *ServiceSuite) TestDisabledAllowsEverything() {
	service, err := New("", s.random)
	s.Require().NoError(err)

	s.False(service.Enabled())
	s.NoError(service.Verify(""))
	s.NoError(service.Verify("anything"))
}

func (s *ServiceSuite) TestNewRejectsMalformedHash() {
	_, err := New("not-a-bcrypt-hash", s.random)
	s.ErrorIs(err, ErrInvalidHash)
}

func (s *ServiceSuite) TestGenerateKeyRoundTrips() {
	s.random.QueueString("abcdefghijklmnopqrstuvwxyz012345")

	key, hash, err := s.service.GenerateKey()
	s.Require().NoError(err)

	s.Equal("gf_abcdefghijklmnopqrstuvwxyz012345", key)

	service, err := New(hash, s.random)
	s.Require().NoError(err)
	s.NoError(service.Verify(key))
}
