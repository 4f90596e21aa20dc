package pattern

// drumMap holds the 5x5 grid of density maps explored by the X/Y
// controls. Each node stores 32 steps for the bass drum, then the snare,
// then the hi-hat.
var drumMap = [5][5][NumParts * StepsPerPattern]uint8{
	{
		{
			246, 0, 0, 0, 26, 0, 0, 0, 104, 0, 0, 0, 39, 0, 25, 0,
			229, 0, 0, 0, 31, 0, 34, 0, 97, 0, 0, 0, 50, 0, 0, 0,
			0, 0, 38, 0, 36, 0, 0, 0, 220, 0, 27, 0, 34, 0, 43, 0,
			47, 0, 0, 0, 59, 0, 30, 0, 248, 0, 0, 0, 36, 0, 63, 0,
			152, 28, 81, 0, 255, 0, 74, 40, 147, 0, 55, 0, 248, 0, 63, 25,
			145, 0, 55, 29, 232, 0, 72, 44, 174, 40, 70, 0, 247, 40, 61, 0,
		},
		{
			255, 0, 0, 0, 51, 0, 0, 0, 121, 0, 0, 0, 63, 0, 0, 0,
			220, 0, 0, 0, 80, 0, 32, 0, 99, 0, 0, 0, 74, 0, 0, 0,
			62, 0, 0, 0, 52, 28, 0, 0, 229, 0, 0, 0, 33, 0, 53, 32,
			30, 0, 0, 0, 60, 0, 40, 27, 229, 24, 0, 25, 66, 0, 46, 0,
			174, 0, 77, 32, 222, 34, 102, 34, 165, 0, 82, 0, 251, 30, 102, 0,
			182, 0, 89, 0, 245, 0, 91, 30, 178, 0, 98, 0, 253, 0, 123, 0,
		},
		{
			255, 0, 0, 0, 82, 0, 0, 0, 137, 0, 0, 0, 77, 0, 0, 0,
			213, 0, 0, 0, 91, 0, 31, 0, 132, 0, 0, 0, 80, 0, 0, 0,
			75, 30, 0, 0, 55, 32, 0, 0, 236, 0, 0, 37, 77, 45, 41, 0,
			54, 0, 38, 30, 74, 33, 33, 40, 237, 44, 40, 0, 46, 25, 45, 0,
			189, 0, 140, 37, 216, 0, 114, 27, 187, 0, 159, 31, 255, 37, 124, 0,
			187, 0, 119, 0, 220, 30, 135, 0, 174, 0, 110, 37, 255, 35, 159, 42,
		},
		{
			255, 0, 30, 0, 97, 0, 32, 0, 134, 0, 27, 0, 117, 0, 35, 0,
			232, 0, 0, 0, 97, 0, 0, 0, 161, 0, 0, 0, 97, 0, 0, 0,
			99, 39, 31, 0, 91, 41, 0, 49, 236, 28, 38, 35, 94, 0, 70, 33,
			101, 49, 0, 26, 59, 42, 24, 0, 245, 26, 0, 0, 93, 0, 45, 45,
			193, 0, 160, 0, 255, 29, 182, 36, 181, 0, 160, 0, 230, 0, 166, 0,
			205, 0, 186, 44, 243, 0, 185, 31, 215, 44, 153, 0, 227, 28, 186, 33,
		},
		{
			244, 0, 0, 0, 134, 0, 36, 0, 187, 0, 0, 0, 114, 0, 0, 0,
			227, 0, 30, 0, 130, 0, 0, 0, 174, 0, 38, 0, 112, 0, 0, 0,
			113, 47, 27, 46, 83, 42, 0, 59, 222, 59, 0, 49, 87, 58, 59, 52,
			91, 60, 0, 44, 46, 69, 0, 67, 221, 52, 30, 47, 89, 63, 66, 45,
			225, 33, 183, 0, 219, 0, 224, 0, 187, 0, 180, 0, 230, 42, 188, 30,
			235, 33, 211, 0, 215, 0, 186, 38, 223, 0, 189, 0, 248, 30, 208, 0,
		},
	},
	{
		{
			255, 0, 42, 0, 65, 0, 33, 0, 74, 0, 35, 0, 45, 0, 44, 0,
			230, 0, 54, 0, 46, 0, 42, 0, 66, 0, 35, 0, 52, 0, 48, 0,
			50, 0, 0, 0, 25, 0, 0, 0, 239, 0, 28, 0, 0, 0, 81, 0,
			44, 0, 0, 0, 68, 0, 0, 0, 210, 0, 0, 0, 0, 0, 98, 0,
			145, 0, 80, 41, 243, 0, 48, 25, 136, 43, 51, 44, 223, 0, 68, 39,
			133, 32, 56, 0, 254, 0, 88, 0, 146, 40, 87, 38, 251, 0, 69, 32,
		},
		{
			255, 0, 38, 0, 77, 0, 52, 0, 107, 0, 30, 0, 80, 0, 37, 0,
			219, 0, 39, 0, 66, 0, 26, 0, 84, 0, 45, 0, 52, 0, 38, 0,
			39, 26, 37, 26, 54, 0, 0, 29, 212, 0, 40, 0, 49, 0, 78, 32,
			46, 32, 37, 0, 82, 0, 0, 0, 215, 0, 0, 0, 65, 0, 105, 0,
			167, 36, 80, 0, 236, 0, 116, 0, 155, 0, 127, 25, 231, 0, 113, 42,
			148, 25, 105, 50, 252, 0, 82, 44, 158, 0, 91, 38, 219, 46, 108, 48,
		},
		{
			255, 0, 65, 0, 84, 0, 48, 0, 115, 0, 59, 0, 91, 24, 32, 0,
			232, 0, 43, 0, 73, 0, 35, 0, 104, 0, 64, 0, 63, 0, 37, 0,
			78, 0, 46, 0, 85, 24, 0, 44, 244, 33, 0, 30, 72, 0, 107, 0,
			47, 0, 0, 35, 82, 0, 25, 0, 215, 45, 31, 0, 83, 35, 91, 0,
			164, 55, 155, 32, 240, 44, 124, 26, 157, 57, 158, 0, 238, 27, 160, 0,
			191, 36, 149, 0, 244, 24, 149, 49, 185, 0, 134, 42, 244, 0, 119, 31,
		},
		{
			237, 24, 43, 0, 88, 0, 55, 0, 127, 0, 52, 0, 88, 0, 47, 0,
			222, 0, 54, 0, 104, 0, 66, 0, 141, 0, 50, 27, 115, 0, 61, 0,
			74, 32, 50, 25, 76, 24, 42, 51, 232, 56, 38, 35, 69, 49, 85, 55,
			64, 0, 60, 35, 104, 26, 45, 0, 255, 0, 41, 24, 81, 56, 78, 34,
			206, 26, 165, 60, 231, 50, 165, 30, 213, 64, 155, 0, 207, 40, 159, 44,
			179, 46, 149, 26, 242, 0, 154, 44, 200, 54, 155, 37, 205, 60, 161, 54,
		},
		{
			255, 0, 58, 0, 101, 29, 65, 0, 147, 0, 43, 0, 110, 0, 46, 0,
			202, 27, 75, 0, 128, 0, 40, 0, 178, 0, 64, 26, 111, 24, 75, 0,
			101, 48, 68, 53, 112, 48, 36, 30, 231, 52, 32, 56, 117, 53, 102, 65,
			81, 34, 70, 54, 105, 49, 45, 54, 223, 43, 35, 40, 98, 61, 75, 47,
			195, 37, 181, 37, 254, 49, 182, 71, 217, 67, 196, 70, 230, 29, 176, 32,
			234, 30, 176, 69, 226, 53, 180, 37, 216, 39, 225, 31, 243, 51, 194, 70,
		},
	},
	{
		{
			255, 0, 41, 0, 72, 0, 51, 0, 88, 0, 60, 0, 69, 0, 48, 0,
			204, 0, 64, 0, 53, 0, 53, 0, 56, 0, 53, 0, 41, 0, 49, 0,
			43, 0, 0, 0, 26, 0, 0, 0, 218, 0, 39, 0, 0, 0, 101, 0,
			44, 0, 39, 0, 133, 0, 33, 0, 219, 0, 34, 0, 0, 0, 102, 0,
			146, 0, 47, 42, 196, 40, 54, 36, 154, 35, 79, 0, 218, 0, 67, 0,
			148, 27, 94, 37, 235, 0, 65, 0, 146, 0, 90, 0, 224, 38, 75, 35,
		},
		{
			255, 24, 73, 0, 64, 0, 73, 0, 79, 0, 72, 25, 66, 0, 74, 0,
			212, 0, 51, 0, 66, 0, 54, 0, 107, 0, 67, 0, 84, 0, 79, 0,
			44, 0, 28, 0, 49, 0, 52, 0, 244, 0, 0, 0, 43, 0, 128, 0,
			43, 25, 52, 0, 132, 0, 43, 29, 216, 0, 26, 0, 46, 28, 107, 0,
			142, 31, 125, 38, 240, 43, 88, 37, 180, 33, 124, 26, 239, 27, 88, 0,
			141, 0, 107, 0, 201, 56, 123, 56, 154, 57, 101, 58, 221, 28, 91, 51,
		},
		{
			250, 0, 92, 0, 93, 28, 62, 32, 126, 0, 76, 0, 65, 32, 63, 0,
			216, 32, 83, 0, 86, 0, 82, 27, 120, 32, 65, 0, 84, 0, 76, 0,
			48, 29, 63, 0, 62, 0, 36, 44, 222, 38, 31, 28, 76, 42, 121, 0,
			74, 32, 50, 0, 119, 27, 50, 31, 233, 0, 56, 0, 51, 0, 107, 32,
			184, 51, 127, 53, 230, 66, 134, 58, 198, 64, 141, 60, 219, 47, 122, 71,
			203, 27, 141, 72, 208, 27, 114, 33, 157, 44, 138, 66, 205, 46, 137, 53,
		},
		{
			241, 0, 69, 0, 95, 0, 81, 0, 140, 0, 81, 32, 102, 26, 80, 0,
			218, 0, 76, 36, 101, 0, 78, 36, 113, 24, 79, 25, 103, 0, 94, 0,
			95, 37, 69, 54, 81, 31, 69, 44, 222, 0, 55, 25, 90, 34, 127, 49,
			74, 26, 60, 30, 117, 34, 59, 33, 225, 49, 76, 48, 71, 0, 123, 0,
			210, 37, 179, 54, 231, 43, 174, 37, 190, 57, 165, 64, 200, 80, 145, 54,
			173, 61, 162, 39, 233, 50, 188, 58, 212, 46, 144, 74, 221, 79, 172, 46,
		},
		{
			255, 46, 81, 0, 84, 29, 92, 0, 149, 27, 90, 47, 101, 35, 82, 29,
			203, 0, 95, 39, 113, 0, 85, 37, 151, 25, 105, 0, 97, 33, 85, 46,
			115, 36, 80, 53, 90, 33, 71, 50, 235, 51, 87, 48, 101, 56, 131, 63,
			116, 49, 67, 30, 116, 57, 97, 42, 243, 48, 86, 55, 84, 66, 109, 34,
			189, 61, 194, 81, 198, 81, 196, 51, 219, 96, 192, 67, 201, 69, 220, 75,
			199, 58, 192, 94, 208, 84, 183, 81, 204, 71, 191, 55, 243, 99, 181, 63,
		},
	},
	{
		{
			241, 0, 85, 0, 71, 0, 66, 0, 56, 0, 82, 0, 65, 0, 84, 0,
			182, 0, 76, 0, 79, 0, 64, 0, 66, 0, 66, 0, 73, 0, 68, 0,
			0, 0, 0, 0, 0, 0, 0, 0, 198, 0, 0, 0, 0, 0, 160, 0,
			43, 0, 24, 0, 136, 0, 0, 0, 222, 0, 28, 0, 0, 0, 125, 0,
			162, 0, 69, 0, 231, 33, 67, 0, 174, 0, 57, 0, 188, 0, 77, 32,
			156, 0, 57, 34, 203, 0, 48, 0, 142, 0, 77, 36, 229, 0, 88, 0,
		},
		{
			253, 0, 91, 24, 63, 27, 84, 0, 80, 0, 76, 26, 74, 0, 92, 0,
			194, 27, 85, 24, 69, 0, 94, 0, 68, 0, 84, 0, 84, 0, 105, 0,
			33, 26, 58, 0, 42, 0, 53, 0, 197, 0, 62, 0, 44, 27, 162, 0,
			45, 0, 50, 0, 122, 0, 47, 0, 224, 31, 62, 0, 47, 0, 132, 0,
			190, 64, 125, 65, 216, 57, 111, 43, 164, 39, 78, 43, 222, 0, 87, 61,
			159, 0, 122, 0, 200, 27, 95, 58, 151, 41, 97, 64, 190, 0, 101, 28,
		},
		{
			252, 0, 99, 0, 69, 0, 89, 0, 91, 38, 92, 0, 74, 0, 105, 0,
			196, 38, 110, 36, 66, 0, 89, 32, 88, 0, 99, 0, 83, 27, 116, 30,
			81, 41, 71, 0, 49, 33, 69, 33, 218, 0, 85, 37, 63, 0, 127, 37,
			59, 0, 73, 42, 148, 37, 67, 0, 226, 44, 57, 27, 66, 0, 153, 0,
			173, 46, 140, 75, 228, 75, 118, 72, 201, 62, 115, 64, 196, 68, 160, 49,
			191, 70, 120, 78, 201, 64, 160, 41, 156, 44, 137, 61, 198, 51, 123, 76,
		},
		{
			255, 48, 103, 32, 62, 27, 135, 27, 113, 0, 124, 24, 93, 33, 124, 38,
			186, 49, 116, 39, 75, 36, 114, 0, 138, 28, 114, 46, 62, 25, 128, 0,
			62, 39, 101, 28, 62, 54, 91, 0, 247, 0, 96, 0, 74, 0, 138, 0,
			77, 46, 98, 37, 137, 53, 93, 55, 217, 31, 93, 43, 94, 44, 124, 34,
			216, 56, 176, 76, 196, 65, 185, 105, 182, 87, 154, 76, 189, 66, 163, 74,
			207, 93, 146, 67, 212, 87, 190, 77, 170, 105, 154, 80, 187, 80, 162, 100,
		},
		{
			251, 43, 123, 54, 77, 59, 131, 36, 127, 53, 127, 48, 69, 30, 115, 40,
			170, 60, 120, 30, 103, 61, 127, 55, 141, 28, 125, 58, 70, 36, 139, 36,
			91, 45, 103, 47, 108, 31, 104, 70, 255, 30, 124, 56, 108, 32, 153, 44,
			112, 40, 102, 46, 127, 59, 99, 65, 255, 47, 111, 69, 82, 56, 157, 38,
			217, 109, 223, 77, 223, 118, 175, 125, 204, 90, 190, 92, 212, 119, 188, 89,
			225, 83, 205, 119, 190, 109, 207, 77, 199, 108, 176, 80, 217, 92, 220, 94,
		},
	},
	{
		{
			247, 0, 112, 0, 58, 0, 111, 0, 43, 0, 98, 0, 87, 0, 106, 0,
			157, 0, 100, 0, 62, 0, 90, 0, 47, 0, 109, 0, 81, 0, 77, 0,
			0, 0, 0, 0, 48, 0, 29, 0, 188, 0, 0, 0, 0, 0, 188, 0,
			25, 0, 0, 0, 163, 0, 0, 0, 217, 0, 0, 0, 24, 0, 165, 0,
			127, 0, 67, 34, 202, 0, 89, 0, 143, 26, 45, 31, 196, 43, 50, 37,
			143, 0, 75, 0, 199, 0, 80, 0, 127, 0, 63, 27, 207, 0, 93, 0,
		},
		{
			255, 0, 112, 30, 88, 0, 128, 0, 58, 0, 110, 0, 87, 0, 117, 0,
			169, 0, 123, 31, 81, 0, 108, 0, 68, 0, 112, 0, 64, 0, 102, 0,
			42, 0, 36, 0, 49, 0, 33, 31, 199, 0, 38, 0, 42, 0, 169, 0,
			57, 0, 70, 27, 187, 0, 42, 0, 221, 0, 38, 0, 28, 0, 158, 0,
			162, 68, 90, 51, 217, 27, 88, 60, 189, 60, 77, 43, 214, 50, 83, 40,
			156, 38, 121, 59, 176, 45, 117, 45, 180, 33, 102, 57, 201, 0, 112, 44,
		},
		{
			255, 35, 140, 0, 78, 33, 135, 24, 79, 0, 115, 32, 71, 43, 126, 43,
			174, 0, 134, 26, 57, 35, 143, 45, 90, 27, 129, 42, 72, 39, 131, 40,
			82, 30, 71, 0, 46, 0, 91, 0, 228, 31, 83, 0, 54, 36, 189, 0,
			65, 0, 63, 24, 172, 0, 95, 38, 228, 0, 97, 37, 85, 45, 179, 24,
			160, 53, 114, 59, 182, 95, 152, 50, 167, 76, 136, 55, 211, 70, 147, 98,
			202, 71, 142, 92, 183, 98, 127, 51, 165, 76, 111, 61, 220, 58, 131, 83,
		},
		{
			255, 34, 165, 32, 84, 55, 157, 49, 99, 35, 140, 60, 67, 28, 137, 38,
			169, 31, 164, 61, 55, 47, 162, 27, 96, 32, 164, 32, 86, 43, 159, 56,
			97, 45, 115, 0, 82, 48, 96, 47, 222, 0, 111, 49, 64, 41, 171, 25,
			71, 42, 126, 50, 190, 37, 93, 40, 237, 36, 92, 25, 100, 41, 181, 0,
			208, 97, 177, 119, 225, 82, 182, 77, 196, 78, 157, 81, 190, 125, 172, 79,
			219, 98, 184, 115, 175, 113, 171, 80, 176, 126, 190, 89, 203, 95, 171, 102,
		},
		{
			255, 64, 157, 70, 83, 44, 169, 58, 136, 74, 187, 48, 85, 53, 184, 75,
			169, 47, 187, 71, 78, 59, 186, 53, 125, 56, 170, 53, 63, 47, 177, 49,
			101, 34, 151, 44, 82, 56, 127, 63, 250, 42, 139, 52, 105, 46, 159, 38,
			91, 61, 121, 68, 182, 68, 141, 64, 232, 55, 121, 50, 93, 62, 190, 63,
			209, 110, 203, 112, 223, 110, 210, 136, 230, 111, 223, 127, 176, 112, 177, 143,
			219, 109, 219, 126, 221, 126, 198, 124, 209, 148, 185, 128, 188, 141, 216, 145,
		},
	},
}
