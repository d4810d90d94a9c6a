// Package sensors carries descriptor list of SMA Sunny Home Manager 2 used when no descriptor file is configured
package sensors

//go:generate go run .. generate --input shm2.yaml --output shm2_gen.go --package sensors --var SHM2
