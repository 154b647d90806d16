package cartrpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "rocketshoes.cart.v1.CartService"

const (
	CartService_GetCart_FullMethodName             = "/" + ServiceName + "/GetCart"
	CartService_AddProduct_FullMethodName          = "/" + ServiceName + "/AddProduct"
	CartService_RemoveProduct_FullMethodName       = "/" + ServiceName + "/RemoveProduct"
	CartService_UpdateProductAmount_FullMethodName = "/" + ServiceName + "/UpdateProductAmount"
	CartService_Watch_FullMethodName               = "/" + ServiceName + "/Watch"
)

type CartServiceServer interface {
	GetCart(context.Context, *GetCartRequest) (*CartResponse, error)
	AddProduct(context.Context, *AddProductRequest) (*CartResponse, error)
	RemoveProduct(context.Context, *RemoveProductRequest) (*CartResponse, error)
	UpdateProductAmount(context.Context, *UpdateProductAmountRequest) (*CartResponse, error)
	// Watch streams the current cart, then every committed change.
	Watch(*WatchRequest, CartService_WatchServer) error
}

type CartService_WatchServer interface {
	Send(*Cart) error
	grpc.ServerStream
}

type cartServiceWatchServer struct {
	grpc.ServerStream
}

func (x *cartServiceWatchServer) Send(m *Cart) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&CartService_ServiceDesc, srv)
}

var CartService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCart",
			Handler: unaryHandler(CartService_GetCart_FullMethodName, func(s CartServiceServer, ctx context.Context, in *GetCartRequest) (*CartResponse, error) {
				return s.GetCart(ctx, in)
			}),
		},
		{
			MethodName: "AddProduct",
			Handler: unaryHandler(CartService_AddProduct_FullMethodName, func(s CartServiceServer, ctx context.Context, in *AddProductRequest) (*CartResponse, error) {
				return s.AddProduct(ctx, in)
			}),
		},
		{
			MethodName: "RemoveProduct",
			Handler: unaryHandler(CartService_RemoveProduct_FullMethodName, func(s CartServiceServer, ctx context.Context, in *RemoveProductRequest) (*CartResponse, error) {
				return s.RemoveProduct(ctx, in)
			}),
		},
		{
			MethodName: "UpdateProductAmount",
			Handler: unaryHandler(CartService_UpdateProductAmount_FullMethodName, func(s CartServiceServer, ctx context.Context, in *UpdateProductAmountRequest) (*CartResponse, error) {
				return s.UpdateProductAmount(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
}

func unaryHandler[Req any](fullMethod string, call func(CartServiceServer, context.Context, *Req) (*CartResponse, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CartServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CartServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	m := new(WatchRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(CartServiceServer).Watch(m, &cartServiceWatchServer{stream})
}

// CartServiceClient calls the cart service with the JSON codec.
type CartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) *CartServiceClient {
	return &CartServiceClient{cc: cc}
}

func (c *CartServiceClient) GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, CartService_GetCart_FullMethodName, in, opts)
}

func (c *CartServiceClient) AddProduct(ctx context.Context, in *AddProductRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, CartService_AddProduct_FullMethodName, in, opts)
}

func (c *CartServiceClient) RemoveProduct(ctx context.Context, in *RemoveProductRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, CartService_RemoveProduct_FullMethodName, in, opts)
}

func (c *CartServiceClient) UpdateProductAmount(ctx context.Context, in *UpdateProductAmountRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, CartService_UpdateProductAmount_FullMethodName, in, opts)
}

type CartService_WatchClient interface {
	Recv() (*Cart, error)
	grpc.ClientStream
}

type cartServiceWatchClient struct {
	grpc.ClientStream
}

func (x *cartServiceWatchClient) Recv() (*Cart, error) {
	m := new(Cart)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *CartServiceClient) Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (CartService_WatchClient, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	stream, err := c.cc.NewStream(ctx, &CartService_ServiceDesc.Streams[0], CartService_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &cartServiceWatchClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *CartServiceClient) invoke(ctx context.Context, method string, in any, opts []grpc.CallOption) (*CartResponse, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	out := new(CartResponse)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
