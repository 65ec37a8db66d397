// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.3.0
// - protoc             (unknown)
// source: staffdir/v1/staffdir.proto

package staffdirv1

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.32.0 or later.
const _ = grpc.SupportPackageIsVersion7

const (
	StaffDirectoryService_GetProfiles_FullMethodName = "/staffdir.v1.StaffDirectoryService/GetProfiles"
)

// StaffDirectoryServiceClient is the client API for StaffDirectoryService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
type StaffDirectoryServiceClient interface {
	GetProfiles(ctx context.Context, in *GetProfilesRequest, opts ...grpc.CallOption) (*GetProfilesResponse, error)
}

type staffDirectoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewStaffDirectoryServiceClient(cc grpc.ClientConnInterface) StaffDirectoryServiceClient {
	return &staffDirectoryServiceClient{cc}
}

func (c *staffDirectoryServiceClient) GetProfiles(ctx context.Context, in *GetProfilesRequest, opts ...grpc.CallOption) (*GetProfilesResponse, error) {
	out := new(GetProfilesResponse)
	err := c.cc.Invoke(ctx, StaffDirectoryService_GetProfiles_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StaffDirectoryServiceServer is the server API for StaffDirectoryService service.
// All implementations must embed UnimplementedStaffDirectoryServiceServer
// for forward compatibility
type StaffDirectoryServiceServer interface {
	GetProfiles(context.Context, *GetProfilesRequest) (*GetProfilesResponse, error)
	mustEmbedUnimplementedStaffDirectoryServiceServer()
}

// UnimplementedStaffDirectoryServiceServer must be embedded to have forward compatible implementations.
type UnimplementedStaffDirectoryServiceServer struct {
}

func (UnimplementedStaffDirectoryServiceServer) GetProfiles(context.Context, *GetProfilesRequest) (*GetProfilesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetProfiles not implemented")
}
func (UnimplementedStaffDirectoryServiceServer) mustEmbedUnimplementedStaffDirectoryServiceServer() {}

// UnsafeStaffDirectoryServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to StaffDirectoryServiceServer will
// result in compilation errors.
type UnsafeStaffDirectoryServiceServer interface {
	mustEmbedUnimplementedStaffDirectoryServiceServer()
}

func RegisterStaffDirectoryServiceServer(s grpc.ServiceRegistrar, srv StaffDirectoryServiceServer) {
	s.RegisterService(&StaffDirectoryService_ServiceDesc, srv)
}

func _StaffDirectoryService_GetProfiles_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetProfilesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StaffDirectoryServiceServer).GetProfiles(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StaffDirectoryService_GetProfiles_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StaffDirectoryServiceServer).GetProfiles(ctx, req.(*GetProfilesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// StaffDirectoryService_ServiceDesc is the grpc.ServiceDesc for StaffDirectoryService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var StaffDirectoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "staffdir.v1.StaffDirectoryService",
	HandlerType: (*StaffDirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProfiles",
			Handler:    _StaffDirectoryService_GetProfiles_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "staffdir/v1/staffdir.proto",
}
