package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/ZilDuck/nft-marketplace/internal/dev"
	"github.com/ZilDuck/nft-marketplace/internal/helper"
	"github.com/ZilDuck/nft-marketplace/internal/marketplace"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

type Server struct {
	market marketplace.Service
}

func NewServer(market marketplace.Service) Server {
	return Server{market}
}

func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHomepage).Methods("GET")
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/listings", s.handleListItem).Methods("POST")
	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleGetListing).Methods("GET")
	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleUpdateListing).Methods("PUT")
	r.HandleFunc("/listings/{contract}/{tokenId}", s.handleCancelListing).Methods("DELETE")
	r.HandleFunc("/listings/{contract}/{tokenId}/buy", s.handleBuyItem).Methods("POST")
	r.HandleFunc("/proceeds/withdraw", s.handleWithdrawProceeds).Methods("POST")
	r.HandleFunc("/proceeds/{address}", s.handleGetProceeds).Methods("GET")
	r.NotFoundHandler = notFoundHandler()

	return r
}

func (s Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	_, _ = fmt.Fprintf(w, "NFT Marketplace")
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

type listRequest struct {
	Contract string `json:"contract"`
	TokenId  uint64 `json:"tokenId"`
	Price    uint64 `json:"price"`
	Caller   string `json:"caller"`
}

func (s Server) handleListItem(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	contract, caller, err := normaliseAddresses(req.Contract, req.Caller)
	if err != nil {
		badRequest(w, "invalid address")
		return
	}

	if err := s.market.ListItem(contract, req.TokenId, req.Price, caller); err != nil {
		writeError(w, "list", err, map[string]interface{}{"contract": contract, "tokenId": req.TokenId})
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type buyRequest struct {
	Caller  string `json:"caller"`
	Payment uint64 `json:"payment"`
}

func (s Server) handleBuyItem(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getListingKey(w, r)
	if !ok {
		return
	}

	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	caller, err := helper.NormaliseAddress(req.Caller)
	if err != nil {
		badRequest(w, "invalid address")
		return
	}

	if err := s.market.BuyItem(contract, tokenId, caller, req.Payment); err != nil {
		writeError(w, "buy", err, map[string]interface{}{"contract": contract, "tokenId": tokenId})
		return
	}

	w.WriteHeader(http.StatusOK)
}

type updateRequest struct {
	Price  uint64 `json:"price"`
	Caller string `json:"caller"`
}

func (s Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getListingKey(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	caller, err := helper.NormaliseAddress(req.Caller)
	if err != nil {
		badRequest(w, "invalid address")
		return
	}

	if err := s.market.UpdateListing(contract, tokenId, req.Price, caller); err != nil {
		writeError(w, "update", err, map[string]interface{}{"contract": contract, "tokenId": tokenId})
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s Server) handleCancelListing(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getListingKey(w, r)
	if !ok {
		return
	}

	caller, err := helper.NormaliseAddress(r.URL.Query().Get("caller"))
	if err != nil {
		badRequest(w, "invalid address")
		return
	}

	if err := s.market.CancelListing(contract, tokenId, caller); err != nil {
		writeError(w, "cancel", err, map[string]interface{}{"contract": contract, "tokenId": tokenId})
		return
	}

	w.WriteHeader(http.StatusOK)
}

type withdrawRequest struct {
	Caller string `json:"caller"`
}

func (s Server) handleWithdrawProceeds(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	caller, err := helper.NormaliseAddress(req.Caller)
	if err != nil {
		badRequest(w, "invalid address")
		return
	}

	if err := s.market.WithdrawProceeds(caller); err != nil {
		writeError(w, "withdraw", err, map[string]interface{}{"caller": caller})
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	contract, tokenId, ok := getListingKey(w, r)
	if !ok {
		return
	}

	listing := s.market.GetListing(contract, tokenId)
	listing.Contract = contract
	listing.TokenId = tokenId

	writeJson(w, listing)
}

func (s Server) handleGetProceeds(w http.ResponseWriter, r *http.Request) {
	address, err := helper.NormaliseAddress(mux.Vars(r)["address"])
	if err != nil {
		badRequest(w, "invalid address")
		return
	}

	writeJson(w, map[string]interface{}{
		"identity": address,
		"proceeds": s.market.GetProceeds(address),
	})
}

func getListingKey(w http.ResponseWriter, r *http.Request) (string, uint64, bool) {
	contract, err := helper.NormaliseAddress(mux.Vars(r)["contract"])
	if err != nil {
		badRequest(w, "invalid contract address")
		return "", 0, false
	}

	tokenId, err := strconv.ParseUint(mux.Vars(r)["tokenId"], 10, 64)
	if err != nil {
		badRequest(w, "invalid token id")
		return "", 0, false
	}

	return contract, tokenId, true
}

func normaliseAddresses(contract, caller string) (string, string, error) {
	normalisedContract, err := helper.NormaliseAddress(contract)
	if err != nil {
		return "", "", err
	}

	normalisedCaller, err := helper.NormaliseAddress(caller)
	if err != nil {
		return "", "", err
	}

	return normalisedContract, normalisedCaller, nil
}

func writeError(w http.ResponseWriter, operation string, err error, extra map[string]interface{}) {
	dev.NewError("api", operation, err, extra).Log()

	writeJsonStatus(w, statusFor(err), map[string]interface{}{"error": err.Error()})
}

func statusFor(err error) int {
	var alreadyListed marketplace.AlreadyListedError
	var notListed marketplace.NotListedError
	var priceNotMet marketplace.PriceNotMetError

	switch {
	case errors.As(err, &alreadyListed):
		return http.StatusConflict
	case errors.As(err, &notListed):
		return http.StatusNotFound
	case errors.As(err, &priceNotMet):
		return http.StatusPaymentRequired
	case errors.Is(err, marketplace.ErrPriceMustBeAboveZero),
		errors.Is(err, marketplace.ErrNoProceeds):
		return http.StatusBadRequest
	case errors.Is(err, marketplace.ErrNotOwner),
		errors.Is(err, marketplace.ErrNotApprovedForMarketplace):
		return http.StatusForbidden
	case errors.Is(err, marketplace.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJsonStatus(w, http.StatusBadRequest, map[string]interface{}{"error": msg})
}

func writeJson(w http.ResponseWriter, body interface{}) {
	writeJsonStatus(w, http.StatusOK, body)
}

func writeJsonStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().With(zap.Error(err)).Error("Api: Failed to encode response")
	}
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJsonStatus(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
	})
}
