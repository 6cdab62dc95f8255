package model

import "errors"

// ErrMenuIDTaken 다른 메뉴가 이미 같은 메뉴ID 를 쓰고 있다 (다른 프로세스가 먼저 발급한 경우)
var ErrMenuIDTaken = errors.New("menu id already taken")
