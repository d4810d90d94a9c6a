package queue

import (
	"math/rand"
)

const clientIDChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// broker kicks older session out on client ID collision so every instance needs its own
func defaultClientID() string {
	b := []byte("shm2mqtt-")
	for i := 0; i < 8; i++ {
		b = append(b, clientIDChars[rand.Intn(len(clientIDChars))])
	}
	return string(b)
}
