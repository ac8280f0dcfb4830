package main

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	cartview "github.com/dwikikusuma/storefront/internal/cart/view"
	"github.com/dwikikusuma/storefront/internal/bootstrap"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/xlsx"
	"github.com/dwikikusuma/storefront/internal/checkout/validation"
	checkoutview "github.com/dwikikusuma/storefront/internal/checkout/view"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handlers struct {
	app *bootstrap.App
	log *slog.Logger
}

// wantsJSON reports whether the client asked for JSON rather than a page.
func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func (h *handlers) openCart(c *gin.Context) (*cartapp.Store, bool) {
	st, err := h.app.Cart.Open(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return st, true
}

func (h *handlers) storefront(c *gin.Context) {
	st, err := h.app.Cart.LoadPage(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	products, err := h.app.Catalog.ListProducts(c.Request.Context(), "", 100)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Type", gin.MIMEHTML+"; charset=utf-8")
	c.Status(http.StatusOK)
	if err := cartview.Storefront(c.Writer, cartview.Page{Products: products, Cart: st.Cart()}); err != nil {
		h.log.Error("render storefront failed", slog.Any("err", err))
	}
}

func (h *handlers) getCart(c *gin.Context) {
	st, ok := h.openCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartJSON(st.Cart()))
}

func (h *handlers) cartAction(c *gin.Context) {
	st, ok := h.openCart(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	cmd := cartapp.Command{
		LineID: c.PostForm("line"),
		Name:   c.PostForm("name"),
		Price:  c.PostForm("price"),
		Image:  c.PostForm("image"),
		Value:  c.PostForm("value"),
	}
	// Buttons on the product grid only name the product.
	if pid := c.PostForm("product"); pid != "" {
		p, err := h.app.Catalog.GetProduct(ctx, pid)
		if err != nil {
			writeError(c, err)
			return
		}
		cmd.Name, cmd.Price, cmd.Image = p.Name, p.Price, p.Image
	}

	action := cartapp.Action(c.Param("action"))
	if err := h.app.Dispatcher.Dispatch(ctx, st, action, cmd); err != nil {
		writeError(c, err)
		return
	}

	switch {
	case wantsJSON(c):
		c.JSON(http.StatusOK, cartJSON(st.Cart()))
	case action == cartapp.ActionCheckout:
		c.Redirect(http.StatusSeeOther, "/checkout")
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// goToCheckout writes the hand-off before answering, so the redirect can
// never reach the checkout page ahead of the data.
func (h *handlers) goToCheckout(c *gin.Context) {
	st, ok := h.openCart(c)
	if !ok {
		return
	}
	items := st.PrepareCheckoutHandoff(c.Request.Context())
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"items": items, "next": "/checkout"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/checkout")
}

func (h *handlers) checkout(c *gin.Context) {
	sum, res, err := h.app.Checkout.Load(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"source": res.Source, "summary": summaryJSON(sum)})
		return
	}
	h.renderCheckout(c, http.StatusOK, checkoutview.Page{Summary: sum})
}

func (h *handlers) checkoutQty(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		writeError(c, checkoutdomain.ErrLineIndex)
		return
	}
	id := identity(c)

	var sum *checkoutdomain.Summary
	switch c.DefaultPostForm("event", "change") {
	case "input":
		sum, err = h.app.Checkout.Input(id, idx, c.PostForm("value"))
	case "change":
		if _, has := c.GetPostForm("value"); has {
			if _, err = h.app.Checkout.Input(id, idx, c.PostForm("value")); err != nil {
				break
			}
		}
		sum, err = h.app.Checkout.Change(id, idx)
	default:
		err = cartapp.ErrInvalidInput
	}
	if err != nil {
		writeError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, summaryJSON(sum))
		return
	}
	h.renderCheckout(c, http.StatusOK, checkoutview.Page{Summary: sum})
}

func (h *handlers) submit(c *gin.Context) {
	var form validation.Form
	if err := c.ShouldBind(&form); err != nil {
		writeError(c, cartapp.ErrInvalidInput)
		return
	}
	id := identity(c)

	order, err := h.app.Checkout.Submit(c.Request.Context(), id, form)
	var ve *validation.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve) && !wantsJSON(c):
		sum, _ := h.app.Checkout.Summary(id)
		h.renderCheckout(c, http.StatusUnprocessableEntity, checkoutview.Page{Summary: sum, Form: form, Errors: ve})
		return
	default:
		writeError(c, err)
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, order)
		return
	}
	h.renderCheckout(c, http.StatusOK, checkoutview.Page{Order: &order})
}

func (h *handlers) cancel(c *gin.Context) {
	if err := h.app.Checkout.Cancel(c.Request.Context(), identity(c)); err != nil {
		writeError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"cancelled": true})
		return
	}
	h.renderCheckout(c, http.StatusOK, checkoutview.Page{Cancelled: true})
}

func (h *handlers) acknowledge(c *gin.Context) {
	if err := h.app.Checkout.Acknowledge(c.Request.Context(), identity(c)); err != nil {
		writeError(c, err)
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"next": "/"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) summaryXLSX(c *gin.Context) {
	sum, err := h.app.Checkout.Summary(identity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Type", xlsxMIME)
	c.Header("Content-Disposition", `attachment; filename="resumen.xlsx"`)
	c.Status(http.StatusOK)
	if err := xlsx.WriteSummary(c.Writer, sum); err != nil {
		h.log.Error("write summary workbook failed", slog.Any("err", err))
	}
}

func (h *handlers) renderCheckout(c *gin.Context, status int, p checkoutview.Page) {
	c.Header("Content-Type", gin.MIMEHTML+"; charset=utf-8")
	c.Status(status)
	if err := checkoutview.Checkout(c.Writer, p); err != nil {
		h.log.Error("render checkout failed", slog.Any("err", err))
	}
}

func cartJSON(cart cartdomain.Cart) gin.H {
	lines := make([]gin.H, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, gin.H{
			"id":       l.ID,
			"name":     l.Name,
			"qty":      l.Qty,
			"price":    l.Price,
			"display":  l.PriceDisplay(),
			"img":      l.Img,
			"subtotal": l.Subtotal(),
		})
	}
	return gin.H{
		"lines": lines,
		"total": gin.H{"amount": cart.Total.Amount, "display": cart.Total.Display},
		"panel": gin.H{"class": cart.Panel.Class(), "aria_hidden": cart.Panel.AriaHidden()},
	}
}

func summaryJSON(sum *checkoutdomain.Summary) gin.H {
	lines := make([]gin.H, 0, len(sum.Lines))
	for _, l := range sum.Lines {
		lines = append(lines, gin.H{
			"index": l.Index,
			"name":  l.Name,
			"price": l.Price,
			"input": l.Input,
			"img":   l.Img,
		})
	}
	out := gin.H{"lines": lines, "total": gin.H{"amount": sum.Amount(), "display": sum.Total()}}
	if sum.Empty() {
		out["message"] = checkoutdomain.EmptyMessage
	}
	return out
}
