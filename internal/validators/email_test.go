package validators

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubDNS(t *testing.T, mx map[string]bool, ip map[string]bool) {
	t.Helper()
	origMX, origIP := lookupMX, lookupIP
	t.Cleanup(func() { lookupMX, lookupIP = origMX, origIP })

	lookupMX = func(domain string) ([]*net.MX, error) {
		if mx[domain] {
			return []*net.MX{{Host: "mx." + domain, Pref: 10}}, nil
		}
		return nil, errors.New("no such host")
	}
	lookupIP = func(domain string) ([]net.IP, error) {
		if ip[domain] {
			return []net.IP{net.ParseIP("192.0.2.1")}, nil
		}
		return nil, errors.New("no such host")
	}
}

func TestIsEmailDomainValid(t *testing.T) {
	stubDNS(t, map[string]bool{"coop.test": true}, map[string]bool{"a-only.test": true})

	assert.True(t, IsEmailDomainValid("ada@coop.test"))
	assert.True(t, IsEmailDomainValid("ada@a-only.test"))
	assert.False(t, IsEmailDomainValid("ada@nowhere.test"))
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("trailing@"))
}
