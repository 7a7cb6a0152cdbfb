// Package main provides a printable tracking-target sheet generator.
//
// Usage:
//
//	go run cmd/target_gen/main.go [flags]
//
// Flags:
//
//	--content <text>   识别图编码内容（默认 "saf-ar:demo"）
//	--out <path>       输出 PNG 路径（默认 target_sheet.png）
//	--size <px>        画布边长（默认 1024）
//
// 生成带定位边框的二维码识别图：二维码居中，四角加粗定位块，
// 打印后供跟踪器作为图像目标使用。
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

var (
	contentFlag = flag.String("content", "saf-ar:demo", "识别图编码内容")
	outFlag     = flag.String("out", "target_sheet.png", "输出 PNG 路径")
	sizeFlag    = flag.Int("size", 1024, "画布边长（像素）")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	size := *sizeFlag
	if size < 256 {
		log.Fatalf("画布边长过小: %d (最小 256)", size)
	}

	qr, err := qrcode.New(*contentFlag, qrcode.High)
	if err != nil {
		log.Fatalf("二维码生成失败: %v", err)
	}
	qr.DisableBorder = true

	sheet := image.NewRGBA(image.Rect(0, 0, size, size))

	// 白底
	white := image.NewUniform(color.White)
	xdraw.Draw(sheet, sheet.Bounds(), white, image.Point{}, xdraw.Src)

	black := image.NewUniform(color.Black)

	// 外边框
	border := size / 32
	drawFrame(sheet, black, 0, 0, size, size, border)

	// 四角定位块（帮助跟踪器估计姿态）
	corner := size / 8
	for _, p := range []image.Point{
		{border * 2, border * 2},
		{size - border*2 - corner, border * 2},
		{border * 2, size - border*2 - corner},
	} {
		xdraw.Draw(sheet, image.Rect(p.X, p.Y, p.X+corner, p.Y+corner), black, image.Point{}, xdraw.Src)
	}

	// 二维码居中，占画布一半，最近邻缩放保持边缘锐利
	qrSize := size / 2
	qrImg := qr.Image(qrSize)
	offset := (size - qrSize) / 2
	dst := image.Rect(offset, offset, offset+qrSize, offset+qrSize)
	xdraw.NearestNeighbor.Scale(sheet, dst, qrImg, qrImg.Bounds(), xdraw.Src, nil)

	f, err := os.Create(*outFlag)
	if err != nil {
		log.Fatalf("无法创建输出文件: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, sheet); err != nil {
		log.Fatalf("PNG 编码失败: %v", err)
	}
	log.Printf("识别图已生成: %s (%dx%d, 内容 %q)", *outFlag, size, size, *contentFlag)
}

// drawFrame 绘制指定线宽的矩形边框
func drawFrame(dst *image.RGBA, src image.Image, x, y, w, h, thickness int) {
	xdraw.Draw(dst, image.Rect(x, y, x+w, y+thickness), src, image.Point{}, xdraw.Src)
	xdraw.Draw(dst, image.Rect(x, y+h-thickness, x+w, y+h), src, image.Point{}, xdraw.Src)
	xdraw.Draw(dst, image.Rect(x, y, x+thickness, y+h), src, image.Point{}, xdraw.Src)
	xdraw.Draw(dst, image.Rect(x+w-thickness, y, x+w, y+h), src, image.Point{}, xdraw.Src)
}
