package me

import userModel "terminal-terrace/exercise-service/internal/model/user"

// UserInfoResponse 用户信息响应
type UserInfoResponse = userModel.PublicUser
