package docker

// EntityKind identifies one of the four mirrored engine object classes.
type EntityKind int

const (
	KindContainer EntityKind = iota
	KindImage
	KindVolume
	KindNetwork
)

// String makes EntityKind satisfy the fmt.Stringer interface.
func (k EntityKind) String() string {
	switch k {
	case KindContainer:
		return "containers"
	case KindImage:
		return "images"
	case KindVolume:
		return "volumes"
	case KindNetwork:
		return "networks"
	default:
		return "unknown"
	}
}

// ContainerState is the lifecycle state reported by the engine.
type ContainerState string

const (
	StateRunning ContainerState = "running"
	StateExited  ContainerState = "exited"
	StatePaused  ContainerState = "paused"
	StateUnknown ContainerState = "unknown"
)

// ParseContainerState normalizes the engine's state column.
func ParseContainerState(s string) ContainerState {
	switch s {
	case "running", "exited", "paused":
		return ContainerState(s)
	default:
		return StateUnknown
	}
}

// Container mirrors one engine container. Instances are replaced wholesale on
// each poll; nothing mutates them in place.
type Container struct {
	ID     string
	Name   string
	Image  string
	Status string
	State  ContainerState
	Ports  string
}

// Identity returns the handle used for actions and marking. Container names
// are unique within an engine and are what the dashboard displays.
func (c Container) Identity() string { return c.Name }

// Image mirrors one engine image.
type Image struct {
	ID         string
	Repository string
	Tag        string
	Size       string
}

// Identity returns the handle used for actions and marking.
func (i Image) Identity() string { return i.ID }

// Volume mirrors one engine volume.
type Volume struct {
	Name   string
	Driver string
}

// Identity returns the handle used for actions and marking.
func (v Volume) Identity() string { return v.Name }

// Network mirrors one engine network.
type Network struct {
	ID     string
	Name   string
	Driver string
}

// Identity returns the handle used for actions and marking.
func (n Network) Identity() string { return n.Name }
