package register

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/exercise-service/internal/testutils"
	"terminal-terrace/exercise-service/internal/user"
	"terminal-terrace/exercise-service/pkg/response"
)

func TestRegisterService_validateRequest(t *testing.T) {
	service := &RegisterService{}

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "有效的注册请求",
			req:  RegisterRequest{Username: "ana", Email: "ana@x.com", Password: "pw123456"},
		},
		{
			name:    "用户名为空",
			req:     RegisterRequest{Username: "", Email: "test@example.com", Password: "pw123456"},
			wantErr: true,
			errMsg:  "username is required",
		},
		{
			name:    "用户名太短",
			req:     RegisterRequest{Username: "ab", Email: "test@example.com", Password: "pw123456"},
			wantErr: true,
			errMsg:  "username must be between 3 and 50 characters",
		},
		{
			name:    "用户名太长",
			req:     RegisterRequest{Username: strings.Repeat("a", 51), Email: "test@example.com", Password: "pw123456"},
			wantErr: true,
			errMsg:  "username must be between 3 and 50 characters",
		},
		{
			name:    "用户名包含非法字符",
			req:     RegisterRequest{Username: "test@user", Email: "test@example.com", Password: "pw123456"},
			wantErr: true,
			errMsg:  "username may only contain letters, digits and underscores",
		},
		{
			name:    "邮箱为空",
			req:     RegisterRequest{Username: "testuser", Email: "", Password: "pw123456"},
			wantErr: true,
			errMsg:  "email is required",
		},
		{
			name:    "邮箱格式不正确",
			req:     RegisterRequest{Username: "testuser", Email: "invalid-email", Password: "pw123456"},
			wantErr: true,
			errMsg:  "email is not a valid address",
		},
		{
			name:    "密码为空",
			req:     RegisterRequest{Username: "testuser", Email: "test@example.com", Password: ""},
			wantErr: true,
			errMsg:  "password is required",
		},
		{
			name:    "密码太短",
			req:     RegisterRequest{Username: "testuser", Email: "test@example.com", Password: "pw1"},
			wantErr: true,
			errMsg:  "password must be between 6 and 100 characters",
		},
		{
			name: "用户名包含下划线是合法的",
			req:  RegisterRequest{Username: "test_user_123", Email: "test@example.com", Password: "pw123456"},
		},
		{
			name: "邮箱带加号是合法的",
			req:  RegisterRequest{Username: "testuser", Email: "test+123@example.com", Password: "pw123456"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.validateRequest(tt.req)

			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, response.InvalidParameter, err.Code)
				assert.Equal(t, tt.errMsg, err.Msg)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestRegisterService_Register(t *testing.T) {
	ctx := context.Background()
	db := testutils.SetupTestDB(t)
	service := &RegisterService{users: user.NewUserService(db)}

	view, err := service.Register(ctx, RegisterRequest{Username: "ana", Email: "ana@x.com", Password: "pw123456"})
	require.NoError(t, err)
	assert.Equal(t, "ana", view.Username)

	_, err = service.Register(ctx, RegisterRequest{Username: "ana_again", Email: "ana@x.com", Password: "pw123456"})
	require.Error(t, err)
	assert.Equal(t, response.Conflict, response.CodeOf(err))

	_, err = service.Register(ctx, RegisterRequest{Username: "x", Email: "ana@x.com", Password: "pw123456"})
	require.Error(t, err)
	assert.Equal(t, response.InvalidParameter, response.CodeOf(err))
}
