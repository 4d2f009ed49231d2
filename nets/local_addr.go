package nets

import (
	"net"
	"sync"
)

type IsLocalAddr func(addr string) (bool, error)

func (Module) IsLocalAddr() IsLocalAddr {
	// scripts tend to dial the same host repeatedly, resolve each once
	var mu sync.Mutex
	cache := make(map[string]bool)

	return func(addr string) (bool, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			// no port, the whole addr is the host
			host = addr
		}

		mu.Lock()
		isLocal, ok := cache[host]
		mu.Unlock()
		if ok {
			return isLocal, nil
		}

		ips, err := net.LookupIP(host)
		if err != nil {
			// unresolvable hosts go through the proxy
			return false, nil
		}

		for _, ip := range ips {
			if ip.IsLoopback() || ip.IsPrivate() {
				isLocal = true
				break
			}
		}

		mu.Lock()
		cache[host] = isLocal
		mu.Unlock()
		return isLocal, nil
	}
}
