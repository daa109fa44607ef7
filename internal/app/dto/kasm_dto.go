package dto

type CreateKasmUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateKasmGroupRequest struct {
	Group string `json:"group"`
}

type UpdateKasmPasswordRequest struct {
	Password string `json:"password"`
}

type KasmStatusResponse struct {
	Username string `json:"username"`
	Status   string `json:"status"`
}
