//go:build protogen

package directory

import (
	"context"
	"time"

	"github.com/glowlabs-io/scheduling/libs/grpcx"
	staffdirv1 "github.com/glowlabs-io/scheduling/protos/gen/staffdir/v1"
)

// Profile is the public-facing staff identity kept in the company directory
// service, which owns display names and titles across all products.
type Profile struct {
	StaffID     string
	DisplayName string
	Title       string
}

type Provider interface {
	GetProfiles(ctx context.Context, staffIDs []string) (map[string]Profile, error)
}

type grpcProvider struct {
	client staffdirv1.StaffDirectoryServiceClient
}

func NewProvider(addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcProvider{client: staffdirv1.NewStaffDirectoryServiceClient(conn)}, nil
}

func (p *grpcProvider) GetProfiles(ctx context.Context, staffIDs []string) (map[string]Profile, error) {
	resp, err := p.client.GetProfiles(ctx, &staffdirv1.GetProfilesRequest{StaffIds: staffIDs})
	if err != nil {
		return nil, err
	}
	out := make(map[string]Profile, len(resp.GetProfiles()))
	for _, pr := range resp.GetProfiles() {
		out[pr.GetStaffId()] = Profile{
			StaffID:     pr.GetStaffId(),
			DisplayName: pr.GetDisplayName(),
			Title:       pr.GetTitle(),
		}
	}
	return out, nil
}
