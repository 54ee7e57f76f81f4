package api

import (
	"github.com/gaze-network/mint-authority/modules/minting/api/httphandler"
	"github.com/gaze-network/mint-authority/modules/minting/usecase"
)

func NewHTTPHandler(usecase *usecase.Usecase, requireSignature bool) *httphandler.HttpHandler {
	return httphandler.New(usecase, requireSignature)
}
