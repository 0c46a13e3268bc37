package x11

import (
	"github.com/BurntSushi/xgb/randr"
	"github.com/DevByProxy/fensterchef/internal/geometry"
	"github.com/DevByProxy/fensterchef/internal/wm"
)

// InitRandR selects RandR screen-change notifications on the root
// window so the event loop hears about monitor hotplug. Must be called
// once after Connect. Grounded on taowm's initScreens (xinit.go),
// generalized from taowm's one-shot Xinerama query (no hotplug support)
// to RandR's subscribe-and-requery model, the way this manager's output
// reconfiguration requirement needs.
func (c *Client) InitRandR() error {
	if err := randr.Init(c.Conn); err != nil {
		return err
	}
	if _, err := randr.QueryVersion(c.Conn, 1, 2).Reply(); err != nil {
		return err
	}
	return randr.SelectInputChecked(c.Conn, c.Root,
		randr.NotifyMaskScreenChange|randr.NotifyMaskOutputChange|randr.NotifyMaskCrtcChange).Check()
}

// ProbeOutputs queries RandR for every connected, enabled output's usable
// rectangle, in the wm.OutputInfo form Set.Merge consumes. The first
// output in the reply's primary-output slot is marked IsPrimary.
func (c *Client) ProbeOutputs() ([]wm.OutputInfo, error) {
	resources, err := randr.GetScreenResourcesCurrent(c.Conn, c.Root).Reply()
	if err != nil {
		return nil, err
	}
	primary, err := randr.GetOutputPrimary(c.Conn, c.Root).Reply()
	if err != nil {
		return nil, err
	}

	var outputs []wm.OutputInfo
	for _, outputID := range resources.Outputs {
		info, err := randr.GetOutputInfo(c.Conn, outputID, resources.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(c.Conn, info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		outputs = append(outputs, wm.OutputInfo{
			Output: wm.OutputID(outputID),
			Rect: geometry.Rect{
				X:      int32(crtc.X),
				Y:      int32(crtc.Y),
				Width:  int32(crtc.Width),
				Height: int32(crtc.Height),
			},
			IsPrimary: outputID == primary.Output,
		})
	}
	return outputs, nil
}
