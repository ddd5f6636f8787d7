package wrapper

import (
	"carbonhero/internal/dto/backend_v1_dto"
	"context"
)

type backendClient interface {
	SubmitUserData(ctx context.Context, data backend_v1_dto.UserData) error
}
