package docker

import (
	"strings"
)

// Listing output is pipe-delimited with a fixed field order (see the format
// templates in actions.go). Malformed lines are dropped silently; a parser
// must never take the dashboard down because the engine printed a warning.

const listDelimiter = "|"

func splitListLine(line string, fields int) ([]string, bool) {
	if strings.TrimSpace(line) == "" {
		return nil, false
	}
	parts := strings.SplitN(line, listDelimiter, fields)
	if len(parts) < fields {
		return nil, false
	}
	return parts, true
}

// ParseContainers converts `ps -a` listing output into typed containers.
func ParseContainers(out string) []Container {
	var containers []Container
	for _, line := range strings.Split(out, "\n") {
		parts, ok := splitListLine(line, 6)
		if !ok {
			continue
		}
		containers = append(containers, Container{
			ID:     parts[0],
			Name:   parts[1],
			Image:  parts[2],
			Status: parts[3],
			State:  ParseContainerState(parts[4]),
			Ports:  parts[5],
		})
	}
	return containers
}

// ParseImages converts `images` listing output into typed images.
func ParseImages(out string) []Image {
	var images []Image
	for _, line := range strings.Split(out, "\n") {
		parts, ok := splitListLine(line, 4)
		if !ok {
			continue
		}
		images = append(images, Image{
			ID:         parts[0],
			Repository: parts[1],
			Tag:        parts[2],
			Size:       parts[3],
		})
	}
	return images
}

// ParseVolumes converts `volume ls` listing output into typed volumes.
func ParseVolumes(out string) []Volume {
	var volumes []Volume
	for _, line := range strings.Split(out, "\n") {
		parts, ok := splitListLine(line, 2)
		if !ok {
			continue
		}
		volumes = append(volumes, Volume{
			Name:   parts[0],
			Driver: parts[1],
		})
	}
	return volumes
}

// ParseNetworks converts `network ls` listing output into typed networks.
func ParseNetworks(out string) []Network {
	var networks []Network
	for _, line := range strings.Split(out, "\n") {
		parts, ok := splitListLine(line, 3)
		if !ok {
			continue
		}
		networks = append(networks, Network{
			ID:     parts[0],
			Name:   parts[1],
			Driver: parts[2],
		})
	}
	return networks
}
