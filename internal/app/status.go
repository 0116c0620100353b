package app

import (
	"fmt"
	"strings"

	"gldemos/internal/camera"
	"gldemos/internal/graphics"
)

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// statusLines renders the overlay text: frame rate and count, camera pose, the state
// of every program and the key map.
func statusLines(demo string, fps float64, frame int, cam *camera.Camera, lib *graphics.Library, wireframe, mouseLook bool) []string {
	p := cam.Position()
	lines := []string{
		fmt.Sprintf("%s  %.0f fps  frame %d", demo, fps, frame),
		fmt.Sprintf("pos %.1f %.1f %.1f  yaw %.1f  pitch %.1f", p[0], p[1], p[2], cam.Yaw(), cam.Pitch()),
		fmt.Sprintf("wireframe %s  mouse look %s", onOff(wireframe), onOff(mouseLook)),
	}

	var programs []string
	for _, name := range lib.Names() {
		state := "missing"
		if prog := lib.Get(name); prog != nil {
			state = prog.State().String()
		}
		programs = append(programs, name+"="+state)
	}
	lines = append(lines,
		"programs "+strings.Join(programs, " "),
		"WASD move  arrows look  Space wireframe  Esc mouse  R reload  F3 overlay  Q quit",
	)
	return lines
}
