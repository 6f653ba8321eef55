// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// startupTimeout bounds the wait for the DevTools port after start.
const startupTimeout = 30 * time.Second

// Browser is a running headless browser container.
type Browser struct {
	rt Runtime
	id string

	// RemoteURL is the DevTools endpoint to connect to.
	RemoteURL string
}

// StartBrowser checks that image is present, starts it with the DevTools
// port published and waits until the port accepts connections. The
// container is stopped again if the port never opens.
func StartBrowser(ctx context.Context, rt Runtime, image string, port int, w io.Writer) (*Browser, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("%w (pull it with `%s pull %s`)", err, rt.Name(), image)
	}

	id, err := rt.Start(ctx, image, port)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "started: %s container %s\n", rt.Name(), shortID(id))

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	if err := WaitPort(ctx, addr, startupTimeout); err != nil {
		_ = rt.Stop(context.WithoutCancel(ctx), id)
		return nil, fmt.Errorf("browser container did not come up: %w", err)
	}

	return &Browser{
		rt:        rt,
		id:        id,
		RemoteURL: "ws://" + addr + "/",
	}, nil
}

// Stop stops the container. The stop is attempted even after ctx is
// cancelled.
func (b *Browser) Stop(ctx context.Context) error {
	return b.rt.Stop(context.WithoutCancel(ctx), b.id)
}
